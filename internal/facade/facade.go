package facade

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/analytics"
	"github.com/fyrsmithlabs/alignd/internal/reflection"
	"github.com/fyrsmithlabs/alignd/internal/store"
)

// GeneratorFactory builds a generation capability from a per-call API key.
// Swapped out in tests; production wires reflection.NewOpenAIGenerator.
type GeneratorFactory func(apiKey string) (reflection.Generator, error)

// Commands is the command façade.
type Commands struct {
	store        *store.Store
	engine       *analytics.Engine
	orchestrator *reflection.Orchestrator
	newGenerator GeneratorFactory
	validate     *validator.Validate
	logger       *zap.Logger
}

// Options configures the façade with its collaborators.
type Options struct {
	Store        *store.Store
	Engine       *analytics.Engine
	Orchestrator *reflection.Orchestrator
	NewGenerator GeneratorFactory
	Logger       *zap.Logger
}

// NewCommands creates the command façade.
func NewCommands(opts Options) (*Commands, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("aggregation engine is required")
	}
	if opts.Orchestrator == nil {
		return nil, fmt.Errorf("reflection orchestrator is required")
	}
	if opts.NewGenerator == nil {
		return nil, fmt.Errorf("generator factory is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Commands{
		store:        opts.Store,
		engine:       opts.Engine,
		orchestrator: opts.Orchestrator,
		newGenerator: opts.NewGenerator,
		validate:     validator.New(),
		logger:       opts.Logger,
	}, nil
}

// CreateIdentityInput carries the mutable identity fields on creation.
type CreateIdentityInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateIdentityInput is a partial update; nil fields are left unchanged.
type UpdateIdentityInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// LogBehaviorInput records one action against an identity.
type LogBehaviorInput struct {
	IdentityID     int64  `json:"identity_id" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Description    string `json:"description" validate:"required"`
	AlignmentScore int    `json:"alignment_score" validate:"required,min=1,max=10"`
}

// GenerateReflectionInput identifies the day to reflect on. The structured
// prompt inputs (identity, traits, behaviors) are loaded from the store by
// the orchestrator, not supplied by the caller.
type GenerateReflectionInput struct {
	IdentityID int64  `json:"identity_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// CreateUser creates the sole user of the store.
func (c *Commands) CreateUser(ctx context.Context, name string) (*store.User, error) {
	return c.store.CreateUser(ctx, name)
}

// GetUser returns the sole user, or nil before onboarding.
func (c *Commands) GetUser(ctx context.Context) (*store.User, error) {
	return c.store.GetUser(ctx)
}

// CreateIdentity creates an identity owned by userID.
func (c *Commands) CreateIdentity(ctx context.Context, userID int64, in CreateIdentityInput) (*store.Identity, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	return c.store.CreateIdentity(ctx, userID, in.Name, in.Description)
}

// ListIdentities returns the user's identities in creation order.
func (c *Commands) ListIdentities(ctx context.Context, userID int64) ([]store.Identity, error) {
	return c.store.ListIdentities(ctx, userID)
}

// GetIdentity returns one identity, or nil if absent.
func (c *Commands) GetIdentity(ctx context.Context, id int64) (*store.Identity, error) {
	return c.store.GetIdentity(ctx, id)
}

// UpdateIdentity applies a partial update to an identity.
func (c *Commands) UpdateIdentity(ctx context.Context, id int64, in UpdateIdentityInput) (*store.Identity, error) {
	return c.store.UpdateIdentity(ctx, id, in.Name, in.Description)
}

// DeleteIdentity removes an identity and everything recorded under it.
func (c *Commands) DeleteIdentity(ctx context.Context, id int64) error {
	return c.store.DeleteIdentity(ctx, id)
}

// CreateTrait adds a named trait to an identity.
func (c *Commands) CreateTrait(ctx context.Context, identityID int64, name string) (*store.Trait, error) {
	return c.store.CreateTrait(ctx, identityID, name)
}

// ListTraits returns an identity's traits in creation order.
func (c *Commands) ListTraits(ctx context.Context, identityID int64) ([]store.Trait, error) {
	return c.store.ListTraits(ctx, identityID)
}

// DeleteTrait removes a trait; a no-op when already absent.
func (c *Commands) DeleteTrait(ctx context.Context, id int64) error {
	return c.store.DeleteTrait(ctx, id)
}

// LogBehavior records one behavior with its alignment score.
func (c *Commands) LogBehavior(ctx context.Context, in LogBehaviorInput) (*store.BehaviorLog, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	return c.store.LogBehavior(ctx, in.IdentityID, in.Date, in.Description, in.AlignmentScore)
}

// GetBehaviorsForDate returns one day's behavior logs in creation order.
func (c *Commands) GetBehaviorsForDate(ctx context.Context, identityID int64, date string) ([]store.BehaviorLog, error) {
	return c.store.GetBehaviorsForDate(ctx, identityID, date)
}

// ListBehaviorsForIdentity returns behavior logs date-ascending within the
// optional inclusive bounds.
func (c *Commands) ListBehaviorsForIdentity(ctx context.Context, identityID int64, fromDate, toDate *string) ([]store.BehaviorLog, error) {
	return c.store.ListBehaviorsForIdentity(ctx, identityID, fromDate, toDate)
}

// GenerateReflection synthesizes and persists the reflection for one
// identity and date. The API key is used for this call only.
func (c *Commands) GenerateReflection(ctx context.Context, apiKey string, in GenerateReflectionInput) (*store.DailyReflection, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}

	gen, err := c.newGenerator(apiKey)
	if err != nil {
		return nil, err
	}
	return c.orchestrator.GenerateReflection(ctx, gen, in.IdentityID, in.Date)
}

// GetReflectionForDate returns the reflection for one day, or nil.
func (c *Commands) GetReflectionForDate(ctx context.Context, identityID int64, date string) (*store.DailyReflection, error) {
	return c.store.GetReflectionForDate(ctx, identityID, date)
}

// ListReflections returns reflections newest-date first, truncated to
// limit (store default when limit <= 0).
func (c *Commands) ListReflections(ctx context.Context, identityID int64, limit int) ([]store.DailyReflection, error) {
	return c.store.ListReflections(ctx, identityID, limit)
}

// GetWeeklyAlignment returns per-date alignment aggregates over an
// inclusive range, omitting dates with no logs.
func (c *Commands) GetWeeklyAlignment(ctx context.Context, identityID int64, fromDate, toDate string) ([]analytics.DayAlignment, error) {
	return c.engine.WeeklyAlignment(ctx, identityID, fromDate, toDate)
}

// GetAlignmentTrends returns per-date aggregates over the trailing window
// ending today (engine default when days <= 0).
func (c *Commands) GetAlignmentTrends(ctx context.Context, identityID int64, days int) ([]analytics.TrendPoint, error) {
	return c.engine.AlignmentTrends(ctx, identityID, days)
}

// checkInput runs struct-tag validation, mapping failures to the
// validation error class. Expected caller-correctable conditions are
// logged at Debug, not as faults.
func (c *Commands) checkInput(in interface{}) error {
	if err := c.validate.Struct(in); err != nil {
		c.logger.Debug("input validation failed", zap.Error(err))
		return fmt.Errorf("%w: %v", store.ErrValidation, err)
	}
	return nil
}
