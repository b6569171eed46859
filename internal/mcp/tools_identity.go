package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/alignd/internal/facade"
)

// ===== IDENTITY TOOLS =====

type createIdentityInput struct {
	UserID      int64  `json:"user_id" jsonschema:"required,Owning user identifier"`
	Name        string `json:"name" jsonschema:"required,Identity name"`
	Description string `json:"description,omitempty" jsonschema:"Optional description of the identity"`
}

type listIdentitiesInput struct {
	UserID int64 `json:"user_id" jsonschema:"required,Owning user identifier"`
}

type listIdentitiesOutput struct {
	Identities []identityOutput `json:"identities" jsonschema:"Identities in creation order"`
	Count      int              `json:"count" jsonschema:"Number of identities returned"`
}

type getIdentityInput struct {
	IdentityID int64 `json:"identity_id" jsonschema:"required,Identity identifier"`
}

type getIdentityOutput struct {
	Found    bool            `json:"found" jsonschema:"Whether the identity exists"`
	Identity *identityOutput `json:"identity,omitempty" jsonschema:"The identity, when found"`
}

type updateIdentityInput struct {
	IdentityID  int64   `json:"identity_id" jsonschema:"required,Identity identifier"`
	Name        *string `json:"name,omitempty" jsonschema:"New name; omit to keep current"`
	Description *string `json:"description,omitempty" jsonschema:"New description; omit to keep current"`
}

type deleteIdentityInput struct {
	IdentityID int64 `json:"identity_id" jsonschema:"required,Identity identifier"`
}

type deleteIdentityOutput struct {
	Deleted bool `json:"deleted" jsonschema:"Whether the delete completed"`
}

func (s *Server) registerIdentityTools() {
	// create_identity - Define an identity under the user
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_identity",
		Description: "Create an identity (an aspirational self such as 'Disciplined Founder') owned by the user.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createIdentityInput) (_ *mcp.CallToolResult, out identityOutput, err error) {
		start := time.Now()
		defer func() { s.record("create_identity", start, err) }()

		identity, err := s.commands.CreateIdentity(ctx, args.UserID, facade.CreateIdentityInput{
			Name:        args.Name,
			Description: args.Description,
		})
		if err != nil {
			return nil, identityOutput{}, err
		}
		return nil, toIdentityOutput(identity), nil
	})

	// list_identities - All identities for a user
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_identities",
		Description: "List the user's identities in creation order (oldest first).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listIdentitiesInput) (_ *mcp.CallToolResult, out listIdentitiesOutput, err error) {
		start := time.Now()
		defer func() { s.record("list_identities", start, err) }()

		identities, err := s.commands.ListIdentities(ctx, args.UserID)
		if err != nil {
			return nil, listIdentitiesOutput{}, err
		}
		items := make([]identityOutput, len(identities))
		for i := range identities {
			items[i] = toIdentityOutput(&identities[i])
		}
		return nil, listIdentitiesOutput{Identities: items, Count: len(items)}, nil
	})

	// get_identity - Fetch one identity
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_identity",
		Description: "Return one identity by ID, or found=false when absent.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getIdentityInput) (_ *mcp.CallToolResult, out getIdentityOutput, err error) {
		start := time.Now()
		defer func() { s.record("get_identity", start, err) }()

		identity, err := s.commands.GetIdentity(ctx, args.IdentityID)
		if err != nil {
			return nil, getIdentityOutput{}, err
		}
		if identity == nil {
			return nil, getIdentityOutput{Found: false}, nil
		}
		i := toIdentityOutput(identity)
		return nil, getIdentityOutput{Found: true, Identity: &i}, nil
	})

	// update_identity - Partial update of name/description
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "update_identity",
		Description: "Update an identity's name and/or description. Omitted fields are left unchanged.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args updateIdentityInput) (_ *mcp.CallToolResult, out identityOutput, err error) {
		start := time.Now()
		defer func() { s.record("update_identity", start, err) }()

		identity, err := s.commands.UpdateIdentity(ctx, args.IdentityID, facade.UpdateIdentityInput{
			Name:        args.Name,
			Description: args.Description,
		})
		if err != nil {
			return nil, identityOutput{}, err
		}
		return nil, toIdentityOutput(identity), nil
	})

	// delete_identity - Remove an identity and its records
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_identity",
		Description: "Delete an identity along with its traits, behavior logs, and reflections.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args deleteIdentityInput) (_ *mcp.CallToolResult, out deleteIdentityOutput, err error) {
		start := time.Now()
		defer func() { s.record("delete_identity", start, err) }()

		if err = s.commands.DeleteIdentity(ctx, args.IdentityID); err != nil {
			return nil, deleteIdentityOutput{}, err
		}
		return nil, deleteIdentityOutput{Deleted: true}, nil
	})
}
