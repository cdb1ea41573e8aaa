package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/db"
	"github.com/ziadkadry99/themegen/internal/theme"
)

type mockGenerator struct {
	err  error
	last theme.Request
}

func (m *mockGenerator) Generate(_ context.Context, req theme.Request) (*theme.Generation, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &theme.Generation{
		Model: "mock",
		Result: theme.NewResult(
			theme.Variant{Name: "Dark Mode", Description: "moody", Markup: `<html><script id="design-prompt-data" type="text/plain">PROMPT_A</script></html>`},
			theme.Variant{Name: "Paper", Description: "light", Markup: "<html>paper</html>"},
			theme.Variant{Name: "Neon", Description: "loud", Markup: "<html>neon</html>"},
		),
	}, nil
}

func newTestServer(t *testing.T, gen Generator) (*Server, *creations.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	store := creations.NewStore(database)
	return NewServer(gen, store, "mock", zerolog.Nop()), store
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{generateDesignsTool, "generate_designs"},
		{listCreationsTool, "list_creations"},
		{getDesignPromptTool, "get_design_prompt"},
		{getDesignMarkupTool, "get_design_markup"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
		})
	}
}

func TestGenerateDesigns(t *testing.T) {
	gen := &mockGenerator{}
	srv, store := newTestServer(t, gen)
	ctx := context.Background()

	result, err := srv.handleGenerateDesigns(ctx, call(map[string]any{"prompt": "a bakery", "name": "Crumbs"}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))

	text := extractText(result)
	assert.Contains(t, text, `"Crumbs"`)
	assert.Contains(t, text, "[2] Neon")
	assert.Equal(t, "a bakery", gen.last.Prompt)

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Crumbs", list[0].Name)
}

func TestGenerateDesignsErrors(t *testing.T) {
	ctx := context.Background()

	srv, _ := newTestServer(t, &mockGenerator{})
	result, err := srv.handleGenerateDesigns(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	srv, _ = newTestServer(t, nil)
	result, err = srv.handleGenerateDesigns(ctx, call(map[string]any{"prompt": "x"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	srv, store := newTestServer(t, &mockGenerator{err: errors.New("401 unauthorized")})
	result, err = srv.handleGenerateDesigns(ctx, call(map[string]any{"prompt": "x"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "401 unauthorized")
	list, _ := store.List(ctx, 0)
	assert.Empty(t, list)
}

func TestListCreations(t *testing.T) {
	srv, _ := newTestServer(t, &mockGenerator{})
	ctx := context.Background()

	result, err := srv.handleListCreations(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.Contains(t, extractText(result), "No creations yet")

	_, err = srv.handleGenerateDesigns(ctx, call(map[string]any{"prompt": "p", "name": "Shop"}))
	require.NoError(t, err)

	result, err = srv.handleListCreations(ctx, call(map[string]any{"limit": 5}))
	require.NoError(t, err)
	text := extractText(result)
	assert.Contains(t, text, "Found 1 creation(s)")
	assert.Contains(t, text, "[0] Dark Mode")
}

func TestGetDesignPromptAndMarkup(t *testing.T) {
	srv, store := newTestServer(t, &mockGenerator{})
	ctx := context.Background()

	_, err := srv.handleGenerateDesigns(ctx, call(map[string]any{"prompt": "p", "name": "My Café!"}))
	require.NoError(t, err)
	list, err := store.List(ctx, 1)
	require.NoError(t, err)
	id := list[0].ID

	result, err := srv.handleGetDesignPrompt(ctx, call(map[string]any{"creation_id": id}))
	require.NoError(t, err)
	assert.Equal(t, "PROMPT_A", extractText(result))

	result, err = srv.handleGetDesignPrompt(ctx, call(map[string]any{"creation_id": id, "index": 1}))
	require.NoError(t, err)
	assert.Equal(t, "prompt not found", extractText(result))

	result, err = srv.handleGetDesignMarkup(ctx, call(map[string]any{"creation_id": id, "index": 2}))
	require.NoError(t, err)
	text := extractText(result)
	assert.Contains(t, text, "my_caf__neon.html")
	assert.Contains(t, text, "<html>neon</html>")

	result, err = srv.handleGetDesignMarkup(ctx, call(map[string]any{"creation_id": id, "index": 3}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = srv.handleGetDesignMarkup(ctx, call(map[string]any{"creation_id": "missing"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "No creation found")

	result, err = srv.handleGetDesignPrompt(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
