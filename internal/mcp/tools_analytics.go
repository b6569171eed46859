package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ===== ANALYTICS TOOLS =====

type weeklyAlignmentInput struct {
	IdentityID int64  `json:"identity_id" jsonschema:"required,Identity to aggregate"`
	FromDate   string `json:"from_date" jsonschema:"required,Inclusive range start (YYYY-MM-DD)"`
	ToDate     string `json:"to_date" jsonschema:"required,Inclusive range end (YYYY-MM-DD)"`
}

type dayAlignmentOutput struct {
	Date     string  `json:"date" jsonschema:"Calendar date (YYYY-MM-DD)"`
	AvgScore float64 `json:"avg_score" jsonschema:"Mean alignment score for the date"`
	Count    int     `json:"count" jsonschema:"Number of behaviors logged on the date"`
}

type weeklyAlignmentOutput struct {
	Days []dayAlignmentOutput `json:"days" jsonschema:"Per-date aggregates, oldest first; dates with no logs are omitted"`
}

type alignmentTrendsInput struct {
	IdentityID int64 `json:"identity_id" jsonschema:"required,Identity to aggregate"`
	Days       int   `json:"days,omitempty" jsonschema:"Trailing window size in days ending today (default: 14)"`
}

type trendPointOutput struct {
	Date          string  `json:"date" jsonschema:"Calendar date (YYYY-MM-DD)"`
	AvgAlignment  float64 `json:"avg_alignment" jsonschema:"Mean alignment score for the date"`
	BehaviorCount int     `json:"behavior_count" jsonschema:"Number of behaviors logged on the date"`
}

type alignmentTrendsOutput struct {
	Trends []trendPointOutput `json:"trends" jsonschema:"Per-date aggregates, oldest first; dates with no logs are omitted"`
}

func (s *Server) registerAnalyticsTools() {
	// get_weekly_alignment - Per-date aggregates over a range
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_weekly_alignment",
		Description: "Aggregate an identity's behavior logs per date over an inclusive range: mean alignment score and log count for each date that has logs.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args weeklyAlignmentInput) (_ *mcp.CallToolResult, out weeklyAlignmentOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_weekly_alignment", start, err) }()

		days, err := s.commands.GetWeeklyAlignment(ctx, args.IdentityID, args.FromDate, args.ToDate)
		if err != nil {
			return nil, weeklyAlignmentOutput{}, err
		}
		items := make([]dayAlignmentOutput, len(days))
		for i, d := range days {
			items[i] = dayAlignmentOutput{Date: d.Date, AvgScore: d.AvgScore, Count: d.Count}
		}
		return nil, weeklyAlignmentOutput{Days: items}, nil
	})

	// get_alignment_trends - Trailing-window aggregates
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_alignment_trends",
		Description: "Aggregate an identity's behavior logs per date over a trailing window ending today. Consumers derive drift from the returned series.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args alignmentTrendsInput) (_ *mcp.CallToolResult, out alignmentTrendsOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_alignment_trends", start, err) }()

		trends, err := s.commands.GetAlignmentTrends(ctx, args.IdentityID, args.Days)
		if err != nil {
			return nil, alignmentTrendsOutput{}, err
		}
		items := make([]trendPointOutput, len(trends))
		for i, p := range trends {
			items[i] = trendPointOutput{Date: p.Date, AvgAlignment: p.AvgAlignment, BehaviorCount: p.BehaviorCount}
		}
		return nil, alignmentTrendsOutput{Trends: items}, nil
	})
}
