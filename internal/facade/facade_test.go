package facade

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/analytics"
	"github.com/fyrsmithlabs/alignd/internal/reflection"
	"github.com/fyrsmithlabs/alignd/internal/store"
)

type stubGenerator struct {
	content string
	err     error
}

func (g *stubGenerator) Generate(context.Context, reflection.PromptContext) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

func newTestCommands(t *testing.T) *Commands {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "facade_test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	engine, err := analytics.NewEngine(s, zap.NewNop())
	require.NoError(t, err)

	orch, err := reflection.NewOrchestrator(s, zap.NewNop())
	require.NoError(t, err)

	commands, err := NewCommands(Options{
		Store:        s,
		Engine:       engine,
		Orchestrator: orch,
		NewGenerator: func(apiKey string) (reflection.Generator, error) {
			if apiKey == "" {
				return nil, fmt.Errorf("%w: API key is required", reflection.ErrGeneration)
			}
			return &stubGenerator{content: "generated reflection"}, nil
		},
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return commands
}

func onboard(t *testing.T, c *Commands) *store.Identity {
	t.Helper()
	ctx := context.Background()
	user, err := c.CreateUser(ctx, "Alex")
	require.NoError(t, err)
	identity, err := c.CreateIdentity(ctx, user.ID, CreateIdentityInput{Name: "Disciplined Founder"})
	require.NoError(t, err)
	return identity
}

func TestNewCommands_RequiresCollaborators(t *testing.T) {
	_, err := NewCommands(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is required")
}

func TestCreateIdentity_ValidationBeforeStore(t *testing.T) {
	c := newTestCommands(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "Alex")
	require.NoError(t, err)

	_, err = c.CreateIdentity(ctx, user.ID, CreateIdentityInput{Name: ""})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestLogBehavior_InputValidation(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)
	ctx := context.Background()

	tests := []struct {
		name string
		in   LogBehaviorInput
	}{
		{"missing identity", LogBehaviorInput{Date: "2024-01-01", Description: "x", AlignmentScore: 5}},
		{"bad date", LogBehaviorInput{IdentityID: identity.ID, Date: "Jan 1", Description: "x", AlignmentScore: 5}},
		{"empty description", LogBehaviorInput{IdentityID: identity.ID, Date: "2024-01-01", AlignmentScore: 5}},
		{"score too low", LogBehaviorInput{IdentityID: identity.ID, Date: "2024-01-01", Description: "x", AlignmentScore: 0}},
		{"score too high", LogBehaviorInput{IdentityID: identity.ID, Date: "2024-01-01", Description: "x", AlignmentScore: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.LogBehavior(ctx, tt.in)
			assert.ErrorIs(t, err, store.ErrValidation)
		})
	}

	_, err := c.LogBehavior(ctx, LogBehaviorInput{
		IdentityID: identity.ID, Date: "2024-01-01", Description: "worked", AlignmentScore: 5,
	})
	assert.NoError(t, err)
}

func TestUpdateIdentity_Partial(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)

	desc := "deep work first"
	updated, err := c.UpdateIdentity(context.Background(), identity.ID, UpdateIdentityInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, identity.Name, updated.Name)
	assert.Equal(t, desc, updated.Description)
}

func TestGenerateReflection_EndToEnd(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)
	ctx := context.Background()

	_, err := c.LogBehavior(ctx, LogBehaviorInput{
		IdentityID: identity.ID, Date: "2024-01-01", Description: "shipped", AlignmentScore: 8,
	})
	require.NoError(t, err)

	reflected, err := c.GenerateReflection(ctx, "sk-test", GenerateReflectionInput{
		IdentityID: identity.ID, Date: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated reflection", reflected.Content)

	stored, err := c.GetReflectionForDate(ctx, identity.ID, "2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, reflected.ID, stored.ID)
}

func TestGenerateReflection_MissingKey(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)

	_, err := c.GenerateReflection(context.Background(), "", GenerateReflectionInput{
		IdentityID: identity.ID, Date: "2024-01-01",
	})
	assert.ErrorIs(t, err, reflection.ErrGeneration)
}

func TestGenerateReflection_InputValidation(t *testing.T) {
	c := newTestCommands(t)

	_, err := c.GenerateReflection(context.Background(), "sk-test", GenerateReflectionInput{Date: "2024-01-01"})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = c.GenerateReflection(context.Background(), "sk-test", GenerateReflectionInput{IdentityID: 1, Date: "bad"})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestGetWeeklyAlignment_ThroughFacade(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)
	ctx := context.Background()

	for _, score := range []int{6, 8, 10} {
		_, err := c.LogBehavior(ctx, LogBehaviorInput{
			IdentityID: identity.ID, Date: "2024-01-01", Description: "entry", AlignmentScore: score,
		})
		require.NoError(t, err)
	}

	days, err := c.GetWeeklyAlignment(ctx, identity.ID, "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.InDelta(t, 8.0, days[0].AvgScore, 1e-9)
	assert.Equal(t, 3, days[0].Count)
}

func TestListReflections_DefaultLimit(t *testing.T) {
	c := newTestCommands(t)
	identity := onboard(t, c)

	reflections, err := c.ListReflections(context.Background(), identity.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, reflections)
}
