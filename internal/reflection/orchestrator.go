package reflection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/store"
)

// Snapshot loads the consistent read the Assembling phase works from.
// *store.Store satisfies it.
type Snapshot interface {
	LoadReflectionContext(ctx context.Context, identityID int64, date string) (*store.ReflectionContext, error)
	UpsertReflection(ctx context.Context, identityID int64, date, content string) (*store.DailyReflection, error)
}

// Orchestrator drives reflection generation end to end.
type Orchestrator struct {
	store  Snapshot
	logger *zap.Logger
}

// NewOrchestrator creates a reflection orchestrator over the given store.
func NewOrchestrator(st Snapshot, logger *zap.Logger) (*Orchestrator, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: st, logger: logger}, nil
}

// GenerateReflection assembles the prompt from the store, invokes the
// generation capability, and persists the result for (identityID, date).
//
// The store snapshot is read and released before the external call starts,
// so no store-level lock is held for the duration of the network round
// trip. On any failure nothing is written; a repeat call for the same
// (identityID, date) overwrites the prior content.
func (o *Orchestrator) GenerateReflection(ctx context.Context, gen Generator, identityID int64, date string) (*store.DailyReflection, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: generator is required", ErrGeneration)
	}

	runID := uuid.New().String()
	log := o.logger.With(
		zap.String("run_id", runID),
		zap.Int64("identity_id", identityID),
		zap.String("date", date))
	log.Debug("reflection run", zap.String("state", string(StateAssembling)))

	rc, err := o.store.LoadReflectionContext(ctx, identityID, date)
	if err != nil {
		log.Debug("reflection run", zap.String("state", string(StateFailed)), zap.Error(err))
		return nil, fmt.Errorf("assemble reflection for identity %d on %s: %w", identityID, date, err)
	}

	traits := make([]string, len(rc.Traits))
	for i, t := range rc.Traits {
		traits[i] = t.Name
	}
	entries := make([]BehaviorEntry, len(rc.Behaviors))
	for i, b := range rc.Behaviors {
		entries[i] = BehaviorEntry{Description: b.Description, AlignmentScore: b.AlignmentScore}
	}
	pc := PromptContext{
		IdentityName:        rc.Identity.Name,
		IdentityDescription: rc.Identity.Description,
		Traits:              traits,
		Behaviors:           entries,
	}

	log.Debug("reflection run",
		zap.String("state", string(StateGenerating)),
		zap.Int("traits", len(traits)),
		zap.Int("behaviors", len(entries)))

	content, err := gen.Generate(ctx, pc)
	if err != nil {
		log.Debug("reflection run", zap.String("state", string(StateFailed)), zap.Error(err))
		return nil, fmt.Errorf("generate reflection for identity %d on %s: %w", identityID, date, err)
	}

	reflection, err := o.store.UpsertReflection(ctx, identityID, date, content)
	if err != nil {
		log.Debug("reflection run", zap.String("state", string(StateFailed)), zap.Error(err))
		return nil, fmt.Errorf("persist reflection for identity %d on %s: %w", identityID, date, err)
	}

	log.Info("reflection persisted",
		zap.String("run_id", runID),
		zap.Int64("reflection_id", reflection.ID),
		zap.String("state", string(StatePersisted)))
	return reflection, nil
}
