package mcp

import (
	"time"

	"github.com/fyrsmithlabs/alignd/internal/store"
)

// Wire shapes for tool outputs. Entities cross the command contract with
// stable JSON field names regardless of store-layer changes.

type userOutput struct {
	ID        int64     `json:"id" jsonschema:"User identifier"`
	Name      string    `json:"name" jsonschema:"Display name"`
	CreatedAt time.Time `json:"created_at" jsonschema:"Creation timestamp"`
}

type identityOutput struct {
	ID          int64     `json:"id" jsonschema:"Identity identifier"`
	UserID      int64     `json:"user_id" jsonschema:"Owning user"`
	Name        string    `json:"name" jsonschema:"Identity name"`
	Description string    `json:"description" jsonschema:"Optional description"`
	CreatedAt   time.Time `json:"created_at" jsonschema:"Creation timestamp"`
}

type traitOutput struct {
	ID         int64     `json:"id" jsonschema:"Trait identifier"`
	IdentityID int64     `json:"identity_id" jsonschema:"Owning identity"`
	Name       string    `json:"name" jsonschema:"Trait name"`
	CreatedAt  time.Time `json:"created_at" jsonschema:"Creation timestamp"`
}

type behaviorOutput struct {
	ID             int64     `json:"id" jsonschema:"Behavior log identifier"`
	IdentityID     int64     `json:"identity_id" jsonschema:"Owning identity"`
	Date           string    `json:"date" jsonschema:"Calendar date (YYYY-MM-DD)"`
	Description    string    `json:"description" jsonschema:"What was done"`
	AlignmentScore int       `json:"alignment_score" jsonschema:"Alignment score 1-10"`
	CreatedAt      time.Time `json:"created_at" jsonschema:"Creation timestamp"`
}

type reflectionOutput struct {
	ID         int64     `json:"id" jsonschema:"Reflection identifier"`
	IdentityID int64     `json:"identity_id" jsonschema:"Owning identity"`
	Date       string    `json:"date" jsonschema:"Calendar date (YYYY-MM-DD)"`
	Content    string    `json:"content" jsonschema:"Generated reflection text"`
	CreatedAt  time.Time `json:"created_at" jsonschema:"Creation timestamp"`
}

func toUserOutput(u *store.User) userOutput {
	return userOutput{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toIdentityOutput(i *store.Identity) identityOutput {
	return identityOutput{
		ID:          i.ID,
		UserID:      i.UserID,
		Name:        i.Name,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}

func toTraitOutput(t *store.Trait) traitOutput {
	return traitOutput{ID: t.ID, IdentityID: t.IdentityID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func toBehaviorOutput(b *store.BehaviorLog) behaviorOutput {
	return behaviorOutput{
		ID:             b.ID,
		IdentityID:     b.IdentityID,
		Date:           b.Date,
		Description:    b.Description,
		AlignmentScore: b.AlignmentScore,
		CreatedAt:      b.CreatedAt,
	}
}

func toReflectionOutput(r *store.DailyReflection) reflectionOutput {
	return reflectionOutput{
		ID:         r.ID,
		IdentityID: r.IdentityID,
		Date:       r.Date,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

func toBehaviorOutputs(logs []store.BehaviorLog) []behaviorOutput {
	out := make([]behaviorOutput, len(logs))
	for i := range logs {
		out[i] = toBehaviorOutput(&logs[i])
	}
	return out
}
