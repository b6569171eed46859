package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the SQLite-backed persistent store.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open opens (or creates) the SQLite database at path and migrates the
// schema. The database runs in WAL mode with foreign-key enforcement on,
// so cascading deletes are a storage-layer rule.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path cannot be empty", ErrValidation)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := path + "?_foreign_keys=on&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w: %v", path, ErrStorage, err)
	}

	if err := db.AutoMigrate(&User{}, &Identity{}, &Trait{}, &BehaviorLog{}, &DailyReflection{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w: %v", ErrStorage, err)
	}

	logger.Info("store opened", zap.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("close store: %w: %v", ErrStorage, err)
	}
	return sqlDB.Close()
}

// CreateUser creates the sole user of the store. A second call fails with
// ErrConflict; the single-user invariant is enforced inside one transaction.
func (s *Store) CreateUser(ctx context.Context, name string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	}

	user := &User{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w: %v", ErrStorage, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: a user already exists", ErrConflict)
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

// GetUser returns the sole user, or nil if onboarding has not happened yet.
func (s *Store) GetUser(ctx context.Context) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Order("id").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w: %v", ErrStorage, err)
	}
	return &user, nil
}

// CreateIdentity creates an identity owned by userID.
func (s *Store) CreateIdentity(ctx context.Context, userID int64, name, description string) (*Identity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: identity name cannot be empty", ErrValidation)
	}

	identity := &Identity{UserID: userID, Name: name, Description: description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &User{}, userID, "user"); err != nil {
			return err
		}
		if err := tx.Create(identity).Error; err != nil {
			return fmt.Errorf("create identity: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("identity created",
		zap.Int64("identity_id", identity.ID),
		zap.Int64("user_id", userID))
	return identity, nil
}

// ListIdentities returns the user's identities ordered by creation time
// ascending, so the first identity created is the consumer's default
// selection.
func (s *Store) ListIdentities(ctx context.Context, userID int64) ([]Identity, error) {
	var identities []Identity
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&identities).Error
	if err != nil {
		return nil, fmt.Errorf("list identities: %w: %v", ErrStorage, err)
	}
	return identities, nil
}

// GetIdentity returns the identity with the given id, or nil if absent.
func (s *Store) GetIdentity(ctx context.Context, id int64) (*Identity, error) {
	var identity Identity
	err := s.db.WithContext(ctx).First(&identity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get identity %d: %w: %v", id, ErrStorage, err)
	}
	return &identity, nil
}

// UpdateIdentity applies a partial update; nil fields are left unchanged.
// ID and creation time are never touched.
func (s *Store) UpdateIdentity(ctx context.Context, id int64, name, description *string) (*Identity, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: identity name cannot be empty", ErrValidation)
	}

	var identity Identity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&identity, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: identity %d", ErrNotFound, id)
			}
			return fmt.Errorf("get identity %d: %w: %v", id, ErrStorage, err)
		}

		updates := map[string]interface{}{}
		if name != nil {
			updates["name"] = *name
		}
		if description != nil {
			updates["description"] = *description
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&identity).Updates(updates).Error; err != nil {
			return fmt.Errorf("update identity %d: %w: %v", id, ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// DeleteIdentity removes an identity and, through the storage-layer cascade,
// all of its traits, behavior logs, and reflections. Idempotent no-op when
// the identity is already absent.
func (s *Store) DeleteIdentity(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&Identity{}, id).Error; err != nil {
		return fmt.Errorf("delete identity %d: %w: %v", id, ErrStorage, err)
	}
	return nil
}

// CreateTrait creates a named trait on an identity. A trait name already
// present on that identity fails with ErrConflict; the same name on another
// identity is fine.
func (s *Store) CreateTrait(ctx context.Context, identityID int64, name string) (*Trait, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: trait name cannot be empty", ErrValidation)
	}

	trait := &Trait{IdentityID: identityID, Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &Identity{}, identityID, "identity"); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Trait{}).
			Where("identity_id = ? AND name = ?", identityID, name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check trait uniqueness: %w: %v", ErrStorage, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: trait %q already exists for identity %d", ErrConflict, name, identityID)
		}

		if err := tx.Create(trait).Error; err != nil {
			return fmt.Errorf("create trait: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trait, nil
}

// ListTraits returns an identity's traits in creation order.
func (s *Store) ListTraits(ctx context.Context, identityID int64) ([]Trait, error) {
	var traits []Trait
	err := s.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Order("created_at, id").
		Find(&traits).Error
	if err != nil {
		return nil, fmt.Errorf("list traits: %w: %v", ErrStorage, err)
	}
	return traits, nil
}

// DeleteTrait removes a trait. Deleting an absent trait is a no-op.
func (s *Store) DeleteTrait(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&Trait{}, id).Error; err != nil {
		return fmt.Errorf("delete trait %d: %w: %v", id, ErrStorage, err)
	}
	return nil
}

// LogBehavior records one action against an identity for a calendar date.
// Behavior logs are immutable once created; several logs may share a date.
func (s *Store) LogBehavior(ctx context.Context, identityID int64, date, description string, alignmentScore int) (*BehaviorLog, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: behavior description cannot be empty", ErrValidation)
	}
	if alignmentScore < 1 || alignmentScore > 10 {
		return nil, fmt.Errorf("%w: alignment score %d outside [1,10]", ErrValidation, alignmentScore)
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	log := &BehaviorLog{
		IdentityID:     identityID,
		Date:           date,
		Description:    description,
		AlignmentScore: alignmentScore,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &Identity{}, identityID, "identity"); err != nil {
			return err
		}
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("log behavior: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("behavior logged",
		zap.Int64("identity_id", identityID),
		zap.String("date", date),
		zap.Int("score", alignmentScore))
	return log, nil
}

// GetBehaviorsForDate returns one identity's behavior logs for a single
// date in creation order, oldest first.
func (s *Store) GetBehaviorsForDate(ctx context.Context, identityID int64, date string) ([]BehaviorLog, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	var logs []BehaviorLog
	err := s.db.WithContext(ctx).
		Where("identity_id = ? AND date = ?", identityID, date).
		Order("created_at, id").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("get behaviors for date: %w: %v", ErrStorage, err)
	}
	return logs, nil
}

// ListBehaviorsForIdentity returns behavior logs ordered by date ascending
// then creation time ascending. Bounds are inclusive when present and
// unbounded otherwise.
func (s *Store) ListBehaviorsForIdentity(ctx context.Context, identityID int64, fromDate, toDate *string) ([]BehaviorLog, error) {
	q := s.db.WithContext(ctx).Where("identity_id = ?", identityID)
	if fromDate != nil {
		if err := ValidateDate(*fromDate); err != nil {
			return nil, err
		}
		q = q.Where("date >= ?", *fromDate)
	}
	if toDate != nil {
		if err := ValidateDate(*toDate); err != nil {
			return nil, err
		}
		q = q.Where("date <= ?", *toDate)
	}

	var logs []BehaviorLog
	if err := q.Order("date, created_at, id").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list behaviors: %w: %v", ErrStorage, err)
	}
	return logs, nil
}

// UpsertReflection inserts or overwrites the unique reflection for
// (identityID, date). The row's id and creation time survive overwrites;
// only the content changes.
func (s *Store) UpsertReflection(ctx context.Context, identityID int64, date, content string) (*DailyReflection, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: reflection content cannot be empty", ErrValidation)
	}

	var reflection DailyReflection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &Identity{}, identityID, "identity"); err != nil {
			return err
		}

		row := &DailyReflection{IdentityID: identityID, Date: date, Content: content}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"content": content}),
		}).Create(row).Error
		if err != nil {
			return fmt.Errorf("upsert reflection: %w: %v", ErrStorage, err)
		}

		if err := tx.Where("identity_id = ? AND date = ?", identityID, date).
			First(&reflection).Error; err != nil {
			return fmt.Errorf("read back reflection: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reflection, nil
}

// GetReflectionForDate returns the reflection for (identityID, date), or
// nil if none has been generated.
func (s *Store) GetReflectionForDate(ctx context.Context, identityID int64, date string) (*DailyReflection, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	var reflection DailyReflection
	err := s.db.WithContext(ctx).
		Where("identity_id = ? AND date = ?", identityID, date).
		First(&reflection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reflection: %w: %v", ErrStorage, err)
	}
	return &reflection, nil
}

// DefaultReflectionLimit caps ListReflections when no limit is given.
const DefaultReflectionLimit = 30

// ListReflections returns an identity's reflections ordered by date
// descending. A positive limit truncates from the most recent; zero or
// negative falls back to DefaultReflectionLimit.
func (s *Store) ListReflections(ctx context.Context, identityID int64, limit int) ([]DailyReflection, error) {
	if limit <= 0 {
		limit = DefaultReflectionLimit
	}

	var reflections []DailyReflection
	err := s.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Order("date DESC").
		Limit(limit).
		Find(&reflections).Error
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w: %v", ErrStorage, err)
	}
	return reflections, nil
}

// LoadReflectionContext loads the identity, its full trait list, and the
// date's behavior logs in one transaction, giving the reflection
// orchestrator a consistent snapshot to assemble its prompt from.
// Zero traits or zero behaviors is not an error.
func (s *Store) LoadReflectionContext(ctx context.Context, identityID int64, date string) (*ReflectionContext, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	rc := &ReflectionContext{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rc.Identity, identityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: identity %d", ErrNotFound, identityID)
			}
			return fmt.Errorf("get identity %d: %w: %v", identityID, ErrStorage, err)
		}

		if err := tx.Where("identity_id = ?", identityID).
			Order("created_at, id").
			Find(&rc.Traits).Error; err != nil {
			return fmt.Errorf("load traits: %w: %v", ErrStorage, err)
		}

		if err := tx.Where("identity_id = ? AND date = ?", identityID, date).
			Order("created_at, id").
			Find(&rc.Behaviors).Error; err != nil {
			return fmt.Errorf("load behaviors: %w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// ValidateDate checks that a date is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q is not in YYYY-MM-DD form", ErrValidation, date)
	}
	return nil
}

// requireExists fails with ErrNotFound when the row with the given primary
// key is absent. Runs inside the caller's transaction.
func requireExists(tx *gorm.DB, model interface{}, id int64, kind string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s %d: %w: %v", kind, id, ErrStorage, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return nil
}
