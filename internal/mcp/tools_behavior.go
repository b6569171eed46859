package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/alignd/internal/facade"
)

// ===== BEHAVIOR TOOLS =====

type logBehaviorInput struct {
	IdentityID     int64  `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	Date           string `json:"date" jsonschema:"required,Calendar date (YYYY-MM-DD)"`
	Description    string `json:"description" jsonschema:"required,What was done"`
	AlignmentScore int    `json:"alignment_score" jsonschema:"required,How aligned the behavior was, 1-10"`
}

type getBehaviorsForDateInput struct {
	IdentityID int64  `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	Date       string `json:"date" jsonschema:"required,Calendar date (YYYY-MM-DD)"`
}

type listBehaviorsInput struct {
	IdentityID int64   `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	FromDate   *string `json:"from_date,omitempty" jsonschema:"Inclusive lower date bound (YYYY-MM-DD)"`
	ToDate     *string `json:"to_date,omitempty" jsonschema:"Inclusive upper date bound (YYYY-MM-DD)"`
}

type behaviorListOutput struct {
	Behaviors []behaviorOutput `json:"behaviors" jsonschema:"Behavior logs, oldest date first"`
	Count     int              `json:"count" jsonschema:"Number of logs returned"`
}

func (s *Server) registerBehaviorTools() {
	// log_behavior - Record one scored action
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "log_behavior",
		Description: "Record a behavior for an identity on a given date with an alignment score from 1 to 10.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args logBehaviorInput) (_ *mcp.CallToolResult, out behaviorOutput, err error) {
		start := time.Now()
		defer func() { s.record("log_behavior", start, err) }()

		entry, err := s.commands.LogBehavior(ctx, facade.LogBehaviorInput{
			IdentityID:     args.IdentityID,
			Date:           args.Date,
			Description:    args.Description,
			AlignmentScore: args.AlignmentScore,
		})
		if err != nil {
			return nil, behaviorOutput{}, err
		}
		return nil, toBehaviorOutput(entry), nil
	})

	// get_behaviors_for_date - One day's logs
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_behaviors_for_date",
		Description: "List the behaviors logged for an identity on a single date, in the order they were recorded.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getBehaviorsForDateInput) (_ *mcp.CallToolResult, out behaviorListOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_behaviors_for_date", start, err) }()

		logs, err := s.commands.GetBehaviorsForDate(ctx, args.IdentityID, args.Date)
		if err != nil {
			return nil, behaviorListOutput{}, err
		}
		return nil, behaviorListOutput{Behaviors: toBehaviorOutputs(logs), Count: len(logs)}, nil
	})

	// list_behaviors_for_identity - Logs over an optional date range
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_behaviors_for_identity",
		Description: "List an identity's behavior logs oldest-date first, optionally bounded by inclusive from_date/to_date.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listBehaviorsInput) (_ *mcp.CallToolResult, out behaviorListOutput, err error) {
		start := time.Now()
		defer func() { s.record("list_behaviors_for_identity", start, err) }()

		logs, err := s.commands.ListBehaviorsForIdentity(ctx, args.IdentityID, args.FromDate, args.ToDate)
		if err != nil {
			return nil, behaviorListOutput{}, err
		}
		return nil, behaviorListOutput{Behaviors: toBehaviorOutputs(logs), Count: len(logs)}, nil
	})
}
