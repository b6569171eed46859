package store

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date form used across the store.
// Dates carry no time or timezone component; the caller resolves "today"
// in local time before invoking any operation.
const DateLayout = "2006-01-02"

// Common errors for store operations. Callers classify failures with
// errors.Is; every returned error wraps exactly one of these sentinels.
var (
	// ErrValidation indicates malformed input: empty required text,
	// an alignment score outside [1,10], or a date not in YYYY-MM-DD form.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation: a second user in a
	// single-user store, or a duplicate trait name within one identity.
	ErrConflict = errors.New("conflict")

	// ErrStorage indicates a durable-layer failure (driver or IO fault).
	ErrStorage = errors.New("storage failure")
)

// User is the sole owner of all identities in a store. Exactly one user
// exists per store; it is created once during onboarding and never deleted.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Identities []Identity `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Identity is a self-defined behavioral persona the user is cultivating.
type Identity struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null;default:''" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Traits      []Trait           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Behaviors   []BehaviorLog     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reflections []DailyReflection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Trait is a named quality expected to signal an identity. Trait names are
// unique within their identity but not globally.
type Trait struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	IdentityID int64     `gorm:"not null;uniqueIndex:idx_trait_identity_name" json:"identity_id"`
	Name       string    `gorm:"not null;uniqueIndex:idx_trait_identity_name" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BehaviorLog is a dated record of one action with a subjective alignment
// score toward an identity. Multiple logs may exist for the same identity
// and date; logs are immutable once created.
type BehaviorLog struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	IdentityID     int64     `gorm:"not null;index" json:"identity_id"`
	Date           string    `gorm:"not null;index" json:"date"`
	Description    string    `gorm:"not null" json:"description"`
	AlignmentScore int       `gorm:"not null;check:alignment_score >= 1 AND alignment_score <= 10" json:"alignment_score"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DailyReflection is the generated narrative summary of one day's alignment
// for one identity. At most one reflection exists per (identity, date);
// regeneration overwrites the content in place.
type DailyReflection struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	IdentityID int64     `gorm:"not null;uniqueIndex:idx_reflection_identity_date;index" json:"identity_id"`
	Date       string    `gorm:"not null;uniqueIndex:idx_reflection_identity_date;index" json:"date"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReflectionContext is the consistent snapshot the reflection orchestrator
// assembles its prompt from: one identity, its full trait list, and the
// behavior logs of a single date.
type ReflectionContext struct {
	Identity  Identity
	Traits    []Trait
	Behaviors []BehaviorLog
}
