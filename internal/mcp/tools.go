package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCollectionsTool defines the list_collections MCP tool.
var listCollectionsTool = mcp.NewTool("list_collections",
	mcp.WithDescription("List the selectable case collections with their image and overlay counts."),
)

// getCollectionTool defines the get_collection MCP tool.
var getCollectionTool = mcp.NewTool("get_collection",
	mcp.WithDescription("Get the ordered images of a collection and the annotated overlay each image maps to."),
	mcp.WithString("collection",
		mcp.Required(),
		mcp.Description("Collection key, e.g. \"M3-1-000\" or \"chest/M4\""),
	),
)

// getNoteTool defines the get_note MCP tool.
var getNoteTool = mcp.NewTool("get_note",
	mcp.WithDescription("Get the description note of a collection."),
	mcp.WithString("collection",
		mcp.Required(),
		mcp.Description("Collection key"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default text)"),
		mcp.Enum("text", "html"),
	),
)

// resolveOverlayTool defines the resolve_overlay MCP tool.
var resolveOverlayTool = mcp.NewTool("resolve_overlay",
	mcp.WithDescription("Resolve the annotated overlay shown in place of an image URL. Images without an overlay resolve to themselves."),
	mcp.WithString("image_url",
		mcp.Required(),
		mcp.Description("Asset URL of the base image"),
	),
)
