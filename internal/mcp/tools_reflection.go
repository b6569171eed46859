package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/alignd/internal/facade"
)

// ===== REFLECTION TOOLS =====

type generateReflectionInput struct {
	APIKey     string `json:"api_key" jsonschema:"required,OpenAI API key, used for this call only and never stored"`
	IdentityID int64  `json:"identity_id" jsonschema:"required,Identity to reflect on"`
	Date       string `json:"date" jsonschema:"required,Calendar date to reflect on (YYYY-MM-DD)"`
}

type getReflectionForDateInput struct {
	IdentityID int64  `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	Date       string `json:"date" jsonschema:"required,Calendar date (YYYY-MM-DD)"`
}

type getReflectionOutput struct {
	Found      bool              `json:"found" jsonschema:"Whether a reflection exists for the date"`
	Reflection *reflectionOutput `json:"reflection,omitempty" jsonschema:"The reflection, when found"`
}

type listReflectionsInput struct {
	IdentityID int64 `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	Limit      int   `json:"limit,omitempty" jsonschema:"Maximum reflections to return (default: 30)"`
}

type listReflectionsOutput struct {
	Reflections []reflectionOutput `json:"reflections" jsonschema:"Reflections, newest date first"`
	Count       int                `json:"count" jsonschema:"Number of reflections returned"`
}

func (s *Server) registerReflectionTools() {
	// generate_reflection - Synthesize and persist the day's reflection
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "generate_reflection",
		Description: "Generate the daily reflection for an identity and date from its traits and that day's logged behaviors, and persist it. Regenerating for the same day replaces the content.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args generateReflectionInput) (_ *mcp.CallToolResult, out reflectionOutput, err error) {
		start := time.Now()
		defer func() { s.record("generate_reflection", start, err) }()

		reflected, err := s.commands.GenerateReflection(ctx, args.APIKey, facade.GenerateReflectionInput{
			IdentityID: args.IdentityID,
			Date:       args.Date,
		})
		if err != nil {
			return nil, reflectionOutput{}, err
		}
		return nil, toReflectionOutput(reflected), nil
	})

	// get_reflection_for_date - Fetch one day's reflection
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_reflection_for_date",
		Description: "Return the stored reflection for an identity and date, or found=false when none exists.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getReflectionForDateInput) (_ *mcp.CallToolResult, out getReflectionOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_reflection_for_date", start, err) }()

		reflected, err := s.commands.GetReflectionForDate(ctx, args.IdentityID, args.Date)
		if err != nil {
			return nil, getReflectionOutput{}, err
		}
		if reflected == nil {
			return nil, getReflectionOutput{Found: false}, nil
		}
		r := toReflectionOutput(reflected)
		return nil, getReflectionOutput{Found: true, Reflection: &r}, nil
	})

	// list_reflections - Recent reflections
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_reflections",
		Description: "List an identity's reflections newest-date first, truncated to limit.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listReflectionsInput) (_ *mcp.CallToolResult, out listReflectionsOutput, err error) {
		start := time.Now()
		defer func() { s.record("list_reflections", start, err) }()

		reflections, err := s.commands.ListReflections(ctx, args.IdentityID, args.Limit)
		if err != nil {
			return nil, listReflectionsOutput{}, err
		}
		items := make([]reflectionOutput, len(reflections))
		for i := range reflections {
			items[i] = toReflectionOutput(&reflections[i])
		}
		return nil, listReflectionsOutput{Reflections: items, Count: len(items)}, nil
	})
}
