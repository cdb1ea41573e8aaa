package mcp

import "github.com/mark3labs/mcp-go/mcp"

var generateDesignsTool = mcp.NewTool("generate_designs",
	mcp.WithDescription("Generate three distinct single-file website designs from a brief. The result is saved and can be fetched with get_design_markup and get_design_prompt."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("What the website is for, who it serves, and any style preferences"),
	),
	mcp.WithString("name",
		mcp.Description("Project name used for file names (default \"Untitled\")"),
	),
)

var listCreationsTool = mcp.NewTool("list_creations",
	mcp.WithDescription("List saved design sets, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of creations to return (default 10)"),
	),
)

var getDesignPromptTool = mcp.NewTool("get_design_prompt",
	mcp.WithDescription("Get the design-system prompt embedded in one design, suitable for recreating it."),
	mcp.WithString("creation_id",
		mcp.Required(),
		mcp.Description("ID returned by generate_designs or list_creations"),
	),
	mcp.WithNumber("index",
		mcp.Description("Design index, starting at 0 (default 0)"),
	),
)

var getDesignMarkupTool = mcp.NewTool("get_design_markup",
	mcp.WithDescription("Get the full HTML document of one design."),
	mcp.WithString("creation_id",
		mcp.Required(),
		mcp.Description("ID returned by generate_designs or list_creations"),
	),
	mcp.WithNumber("index",
		mcp.Description("Design index, starting at 0 (default 0)"),
	),
)
