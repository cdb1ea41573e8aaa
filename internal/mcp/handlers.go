package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/export"
	"github.com/ziadkadry99/themegen/internal/theme"
)

func (s *Server) handleGenerateDesigns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}
	if s.gen == nil {
		return mcp.NewToolResultError("no LLM provider configured. Run `themegen auth set` first."), nil
	}
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		name = "Untitled"
	}

	req := theme.Request{Prompt: prompt}
	gen, err := s.gen.Generate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	c := &creations.Creation{
		Name:         name,
		Prompt:       prompt,
		Provider:     s.provider,
		Model:        gen.Model,
		InputTokens:  gen.InputTokens,
		OutputTokens: gen.OutputTokens,
		Source:       theme.VersionsSource(gen.Result.Variants()...),
	}
	if err := s.store.Save(ctx, c); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving designs: %v", err)), nil
	}
	s.log.Info().Str("creation", c.ID).Int("output_tokens", gen.OutputTokens).Msg("designs generated")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Created %q (id %s) with %d designs:\n", c.Name, c.ID, gen.Result.Len())
	for i, v := range gen.Result.Variants() {
		fmt.Fprintf(&sb, "\n[%d] %s\n%s\n", i, v.Name, v.Description)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleListCreations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	list, err := s.store.List(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing creations: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No creations yet. Use generate_designs to create one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d creation(s):\n", len(list))
	for _, c := range list {
		fmt.Fprintf(&sb, "\n%s  %s  (%s)\n", c.ID, c.Name, c.CreatedAt.Format("2006-01-02 15:04"))
		for i, n := range c.ThemeNames {
			fmt.Fprintf(&sb, "  [%d] %s\n", i, n)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetDesignPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, _, errResult := s.lookupVariant(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(string(export.Prompt(v).Body)), nil
}

func (s *Server) handleGetDesignMarkup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, name, errResult := s.lookupVariant(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	a := export.Markup(name, v)
	return mcp.NewToolResultText(fmt.Sprintf("<!-- %s -->\n%s", a.Filename, a.Body)), nil
}

// lookupVariant resolves creation_id and index. A non-nil result is a tool
// error to return as-is.
func (s *Server) lookupVariant(ctx context.Context, request mcp.CallToolRequest) (theme.Variant, string, *mcp.CallToolResult) {
	id, err := request.RequireString("creation_id")
	if err != nil {
		return theme.Variant{}, "", mcp.NewToolResultError("missing required parameter: creation_id")
	}
	index := request.GetInt("index", 0)

	c, err := s.store.Get(ctx, id)
	if err != nil {
		return theme.Variant{}, "", mcp.NewToolResultError(fmt.Sprintf("loading creation: %v", err))
	}
	if c == nil {
		return theme.Variant{}, "", mcp.NewToolResultError(fmt.Sprintf("No creation found with id %q. Use list_creations to find one.", id))
	}
	result, err := c.Result()
	if err != nil {
		return theme.Variant{}, "", mcp.NewToolResultError(fmt.Sprintf("loading creation: %v", err))
	}
	v, err := result.At(index)
	if err != nil {
		return theme.Variant{}, "", mcp.NewToolResultError(fmt.Sprintf("creation %s has %d design(s): %v", id, result.Len(), err))
	}
	return export.Named(v, index), c.Name, nil
}
