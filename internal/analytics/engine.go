package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/alignd/internal/store"
)

// DefaultTrendDays is the trailing window for AlignmentTrends when the
// caller does not specify one.
const DefaultTrendDays = 14

// driftWindow is the slice length for drift comparison: the most recent
// driftWindow trend entries against the entries preceding them.
const driftWindow = 7

// ErrInsufficientData signals that too few trend entries exist to compute
// drift. Drift is never approximated from partial windows; callers surface
// a needs-more-data state instead.
var ErrInsufficientData = errors.New("insufficient data")

// Drift verdicts. Non-negative drift reads as improving alignment; negative
// drift as possible identity drift.
const (
	VerdictImproving = "improving"
	VerdictDrifting  = "possible identity drift"
)

// DayAlignment is one date's aggregate over an inclusive range.
type DayAlignment struct {
	Date     string  `json:"date"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// TrendPoint is one date's aggregate within a trailing trend window.
type TrendPoint struct {
	Date          string  `json:"date"`
	AvgAlignment  float64 `json:"avg_alignment"`
	BehaviorCount int     `json:"behavior_count"`
}

// Drift is the change in mean alignment between the most recent seven
// trend entries and the entries preceding them.
type Drift struct {
	Value   float64 `json:"value"`
	Verdict string  `json:"verdict"`
}

// BehaviorSource supplies the behavior logs the engine aggregates over.
// *store.Store satisfies it.
type BehaviorSource interface {
	ListBehaviorsForIdentity(ctx context.Context, identityID int64, fromDate, toDate *string) ([]store.BehaviorLog, error)
}

// Engine computes per-day and per-window alignment statistics.
type Engine struct {
	source BehaviorSource
	now    func() time.Time
	logger *zap.Logger
}

// NewEngine creates an aggregation engine over the given behavior source.
func NewEngine(source BehaviorSource, logger *zap.Logger) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("behavior source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{source: source, now: time.Now, logger: logger}, nil
}

// WithClock overrides the engine's notion of "today". Used by tests and by
// callers that resolve local time themselves.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WeeklyAlignment computes the per-date mean alignment score and log count
// over [fromDate, toDate] inclusive. Dates with no logs are omitted; the
// result is ordered by date ascending.
func (e *Engine) WeeklyAlignment(ctx context.Context, identityID int64, fromDate, toDate string) ([]DayAlignment, error) {
	if err := store.ValidateDate(fromDate); err != nil {
		return nil, err
	}
	if err := store.ValidateDate(toDate); err != nil {
		return nil, err
	}
	if fromDate > toDate {
		return nil, fmt.Errorf("%w: from date %s is after to date %s", store.ErrValidation, fromDate, toDate)
	}

	logs, err := e.source.ListBehaviorsForIdentity(ctx, identityID, &fromDate, &toDate)
	if err != nil {
		return nil, fmt.Errorf("weekly alignment: %w", err)
	}

	days := aggregateByDate(logs)
	out := make([]DayAlignment, len(days))
	for i, d := range days {
		out[i] = DayAlignment{Date: d.date, AvgScore: d.avg, Count: d.count}
	}

	e.logger.Debug("weekly alignment computed",
		zap.Int64("identity_id", identityID),
		zap.String("from", fromDate),
		zap.String("to", toDate),
		zap.Int("days", len(out)))
	return out, nil
}

// AlignmentTrends computes the same per-date aggregation over the trailing
// days calendar days ending today (DefaultTrendDays when days <= 0).
// Dates with no logs are omitted; the result is ordered by date ascending.
func (e *Engine) AlignmentTrends(ctx context.Context, identityID int64, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	today := e.now()
	to := today.Format(store.DateLayout)
	from := today.AddDate(0, 0, -(days - 1)).Format(store.DateLayout)

	logs, err := e.source.ListBehaviorsForIdentity(ctx, identityID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("alignment trends: %w", err)
	}

	dayAggs := aggregateByDate(logs)
	out := make([]TrendPoint, len(dayAggs))
	for i, d := range dayAggs {
		out[i] = TrendPoint{Date: d.date, AvgAlignment: d.avg, BehaviorCount: d.count}
	}

	e.logger.Debug("alignment trends computed",
		zap.Int64("identity_id", identityID),
		zap.Int("window_days", days),
		zap.Int("trend_points", len(out)))
	return out, nil
}

// ComputeDrift derives drift from a trend sequence: the mean of the most
// recent seven entries minus the mean of the (up to seven) entries before
// them. Fewer than eight entries fails with ErrInsufficientData rather
// than approximating from a partial window.
func ComputeDrift(trends []TrendPoint) (Drift, error) {
	n := len(trends)
	if n < driftWindow+1 {
		return Drift{}, fmt.Errorf("%w: have %d trend entries, need at least %d", ErrInsufficientData, n, driftWindow+1)
	}

	recent := trends[n-driftWindow:]
	prevStart := n - 2*driftWindow
	if prevStart < 0 {
		prevStart = 0
	}
	previous := trends[prevStart : n-driftWindow]

	value := meanAlignment(recent) - meanAlignment(previous)
	verdict := VerdictImproving
	if value < 0 {
		verdict = VerdictDrifting
	}
	return Drift{Value: value, Verdict: verdict}, nil
}

// dayAgg is an intermediate per-date aggregate.
type dayAgg struct {
	date  string
	avg   float64
	count int
}

// aggregateByDate folds date-ascending behavior logs into per-date means.
// Relies on the store's date-ascending ordering; only dates that actually
// have logs appear in the result.
func aggregateByDate(logs []store.BehaviorLog) []dayAgg {
	var out []dayAgg
	for _, log := range logs {
		if len(out) > 0 && out[len(out)-1].date == log.Date {
			last := &out[len(out)-1]
			last.avg = (last.avg*float64(last.count) + float64(log.AlignmentScore)) / float64(last.count+1)
			last.count++
			continue
		}
		out = append(out, dayAgg{date: log.Date, avg: float64(log.AlignmentScore), count: 1})
	}
	return out
}

func meanAlignment(points []TrendPoint) float64 {
	total := 0.0
	for _, p := range points {
		total += p.AvgAlignment
	}
	return total / float64(len(points))
}
