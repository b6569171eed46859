package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ===== TRAIT TOOLS =====

type createTraitInput struct {
	IdentityID int64  `json:"identity_id" jsonschema:"required,Owning identity identifier"`
	Name       string `json:"name" jsonschema:"required,Trait name, unique within the identity"`
}

type listTraitsInput struct {
	IdentityID int64 `json:"identity_id" jsonschema:"required,Owning identity identifier"`
}

type listTraitsOutput struct {
	Traits []traitOutput `json:"traits" jsonschema:"Traits in creation order"`
	Count  int           `json:"count" jsonschema:"Number of traits returned"`
}

type deleteTraitInput struct {
	TraitID int64 `json:"trait_id" jsonschema:"required,Trait identifier"`
}

type deleteTraitOutput struct {
	Deleted bool `json:"deleted" jsonschema:"Whether the delete completed"`
}

func (s *Server) registerTraitTools() {
	// create_trait - Attach a trait to an identity
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_trait",
		Description: "Add a named trait to an identity. Trait names are unique per identity.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createTraitInput) (_ *mcp.CallToolResult, out traitOutput, err error) {
		start := time.Now()
		defer func() { s.record("create_trait", start, err) }()

		trait, err := s.commands.CreateTrait(ctx, args.IdentityID, args.Name)
		if err != nil {
			return nil, traitOutput{}, err
		}
		return nil, toTraitOutput(trait), nil
	})

	// list_traits - All traits for an identity
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_traits",
		Description: "List an identity's traits in creation order.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listTraitsInput) (_ *mcp.CallToolResult, out listTraitsOutput, err error) {
		start := time.Now()
		defer func() { s.record("list_traits", start, err) }()

		traits, err := s.commands.ListTraits(ctx, args.IdentityID)
		if err != nil {
			return nil, listTraitsOutput{}, err
		}
		items := make([]traitOutput, len(traits))
		for i := range traits {
			items[i] = toTraitOutput(&traits[i])
		}
		return nil, listTraitsOutput{Traits: items, Count: len(items)}, nil
	})

	// delete_trait - Remove a trait
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_trait",
		Description: "Delete a trait by ID. Succeeds even when the trait is already gone.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args deleteTraitInput) (_ *mcp.CallToolResult, out deleteTraitOutput, err error) {
		start := time.Now()
		defer func() { s.record("delete_trait", start, err) }()

		if err = s.commands.DeleteTrait(ctx, args.TraitID); err != nil {
			return nil, deleteTraitOutput{}, err
		}
		return nil, deleteTraitOutput{Deleted: true}, nil
	})
}
