package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/store"
)

// fakeSource serves canned behavior logs, filtered by the inclusive date
// bounds the engine passes down.
type fakeSource struct {
	logs []store.BehaviorLog
	err  error
}

func (f *fakeSource) ListBehaviorsForIdentity(_ context.Context, identityID int64, fromDate, toDate *string) ([]store.BehaviorLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []store.BehaviorLog
	for _, log := range f.logs {
		if log.IdentityID != identityID {
			continue
		}
		if fromDate != nil && log.Date < *fromDate {
			continue
		}
		if toDate != nil && log.Date > *toDate {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func behaviors(identityID int64, date string, scores ...int) []store.BehaviorLog {
	out := make([]store.BehaviorLog, len(scores))
	for i, score := range scores {
		out[i] = store.BehaviorLog{IdentityID: identityID, Date: date, AlignmentScore: score}
	}
	return out
}

func TestWeeklyAlignment_OmitsEmptyDates(t *testing.T) {
	src := &fakeSource{logs: behaviors(1, "2024-01-01", 6, 8, 10)}
	engine, err := NewEngine(src, zap.NewNop())
	require.NoError(t, err)

	days, err := engine.WeeklyAlignment(context.Background(), 1, "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.InDelta(t, 8.0, days[0].AvgScore, 1e-9)
	assert.Equal(t, 3, days[0].Count)
}

func TestWeeklyAlignment_MultipleDatesAscending(t *testing.T) {
	var logs []store.BehaviorLog
	logs = append(logs, behaviors(1, "2024-01-01", 4)...)
	logs = append(logs, behaviors(1, "2024-01-03", 7, 9)...)
	engine, err := NewEngine(&fakeSource{logs: logs}, zap.NewNop())
	require.NoError(t, err)

	days, err := engine.WeeklyAlignment(context.Background(), 1, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.InDelta(t, 4.0, days[0].AvgScore, 1e-9)
	assert.Equal(t, "2024-01-03", days[1].Date)
	assert.InDelta(t, 8.0, days[1].AvgScore, 1e-9)
	assert.Equal(t, 2, days[1].Count)
}

func TestWeeklyAlignment_InvalidRange(t *testing.T) {
	engine, err := NewEngine(&fakeSource{}, zap.NewNop())
	require.NoError(t, err)

	_, err = engine.WeeklyAlignment(context.Background(), 1, "2024-01-07", "2024-01-01")
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = engine.WeeklyAlignment(context.Background(), 1, "bad", "2024-01-01")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestAlignmentTrends_TrailingWindow(t *testing.T) {
	today := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	var logs []store.BehaviorLog
	logs = append(logs, behaviors(1, "2023-12-31", 10)...) // outside 14-day window
	logs = append(logs, behaviors(1, "2024-01-01", 5)...)  // first day inside
	logs = append(logs, behaviors(1, "2024-01-14", 7, 9)...)

	engine, err := NewEngine(&fakeSource{logs: logs}, zap.NewNop())
	require.NoError(t, err)
	engine.WithClock(func() time.Time { return today })

	trends, err := engine.AlignmentTrends(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "2024-01-01", trends[0].Date)
	assert.Equal(t, "2024-01-14", trends[1].Date)
	assert.InDelta(t, 8.0, trends[1].AvgAlignment, 1e-9)
	assert.Equal(t, 2, trends[1].BehaviorCount)
}

func TestComputeDrift_Improving(t *testing.T) {
	var trends []TrendPoint
	for day := 1; day <= 7; day++ {
		trends = append(trends, TrendPoint{Date: fmt.Sprintf("2024-01-%02d", day), AvgAlignment: 5.0})
	}
	for day := 8; day <= 14; day++ {
		trends = append(trends, TrendPoint{Date: fmt.Sprintf("2024-01-%02d", day), AvgAlignment: 7.0})
	}

	drift, err := ComputeDrift(trends)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, drift.Value, 1e-9)
	assert.Equal(t, VerdictImproving, drift.Verdict)
}

func TestComputeDrift_Negative(t *testing.T) {
	var trends []TrendPoint
	for day := 1; day <= 7; day++ {
		trends = append(trends, TrendPoint{AvgAlignment: 8.0})
	}
	for day := 8; day <= 14; day++ {
		trends = append(trends, TrendPoint{AvgAlignment: 6.5})
	}

	drift, err := ComputeDrift(trends)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, drift.Value, 1e-9)
	assert.Equal(t, VerdictDrifting, drift.Verdict)
}

func TestComputeDrift_ZeroIsImproving(t *testing.T) {
	trends := make([]TrendPoint, 14)
	for i := range trends {
		trends[i] = TrendPoint{AvgAlignment: 6.0}
	}

	drift, err := ComputeDrift(trends)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, drift.Value, 1e-9)
	assert.Equal(t, VerdictImproving, drift.Verdict)
}

func TestComputeDrift_InsufficientData(t *testing.T) {
	trends := make([]TrendPoint, 7)
	_, err := ComputeDrift(trends)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ComputeDrift(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestComputeDrift_ShortPreviousWindow(t *testing.T) {
	// Eight entries: previous window has a single entry.
	trends := []TrendPoint{{AvgAlignment: 4.0}}
	for day := 0; day < 7; day++ {
		trends = append(trends, TrendPoint{AvgAlignment: 6.0})
	}

	drift, err := ComputeDrift(trends)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, drift.Value, 1e-9)
}

func TestZeroLogDatesNeverContributeZero(t *testing.T) {
	// A gap between two logged dates must not pull the means down.
	var logs []store.BehaviorLog
	logs = append(logs, behaviors(1, "2024-01-01", 10)...)
	logs = append(logs, behaviors(1, "2024-01-05", 10)...)
	engine, err := NewEngine(&fakeSource{logs: logs}, zap.NewNop())
	require.NoError(t, err)

	days, err := engine.WeeklyAlignment(context.Background(), 1, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	require.Len(t, days, 2)
	for _, d := range days {
		assert.InDelta(t, 10.0, d.AvgScore, 1e-9)
	}
}
