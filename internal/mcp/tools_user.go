package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ===== USER TOOLS =====

type createUserInput struct {
	Name string `json:"name" jsonschema:"required,Display name for the sole user"`
}

type getUserInput struct{}

type getUserOutput struct {
	Found bool        `json:"found" jsonschema:"Whether a user exists"`
	User  *userOutput `json:"user,omitempty" jsonschema:"The user, when found"`
}

func (s *Server) registerUserTools() {
	// create_user - Onboard the sole user
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_user",
		Description: "Create the sole user of the store. Fails if a user already exists.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createUserInput) (_ *mcp.CallToolResult, out userOutput, err error) {
		start := time.Now()
		defer func() { s.record("create_user", start, err) }()

		user, err := s.commands.CreateUser(ctx, args.Name)
		if err != nil {
			return nil, userOutput{}, err
		}
		return nil, toUserOutput(user), nil
	})

	// get_user - Fetch the sole user
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_user",
		Description: "Return the sole user, or found=false before onboarding.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getUserInput) (_ *mcp.CallToolResult, out getUserOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_user", start, err) }()

		user, err := s.commands.GetUser(ctx)
		if err != nil {
			return nil, getUserOutput{}, err
		}
		if user == nil {
			return nil, getUserOutput{Found: false}, nil
		}
		u := toUserOutput(user)
		return nil, getUserOutput{Found: true, User: &u}, nil
	})
}
