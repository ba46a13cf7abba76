package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/casegallery/internal/notes"
)

// handleListCollections lists selectable collections.
func (s *Server) handleListCollections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := s.corpus.CollectionKeys()
	if len(keys) == 0 {
		return mcp.NewToolResultText("No collections found. Check image_root in the configuration."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Collections (%d)\n\n", len(keys)))
	for _, k := range keys {
		col, _ := s.corpus.Collection(k)
		sb.WriteString(fmt.Sprintf("- **%s**: %d images, %d overlays\n", k, len(col.Images), len(col.Overlays)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetCollection describes one collection.
func (s *Server) handleGetCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("collection")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: collection"), nil
	}
	col, ok := s.corpus.Collection(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No collection %q. Use list_collections to see available keys.", key)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Collection: %s\n\n", key))
	if note := s.corpus.CollectionNote(key); note != "" {
		sb.WriteString(note)
		sb.WriteString("\n\n")
	}
	sb.WriteString("## Images\n\n")
	for i, img := range col.Images {
		if overlay, ok := s.corpus.OverlayFor(img); ok {
			sb.WriteString(fmt.Sprintf("%d. %s (overlay: %s)\n", i+1, img, overlay))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, img))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetNote returns a collection note as text or HTML.
func (s *Server) handleGetNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("collection")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: collection"), nil
	}
	if _, ok := s.corpus.Collection(key); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No collection %q.", key)), nil
	}

	text := s.corpus.CollectionNote(key)
	switch format := request.GetString("format", "text"); format {
	case "text":
		return mcp.NewToolResultText(notes.Text(text)), nil
	case "html":
		html, err := s.notes.HTML(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rendering note: %v", err)), nil
		}
		return mcp.NewToolResultText(html), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}
}

// handleResolveOverlay maps an image URL to its overlay, falling back to the
// image itself.
func (s *Server) handleResolveOverlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("image_url")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: image_url"), nil
	}
	if overlay, ok := s.corpus.OverlayFor(url); ok {
		return mcp.NewToolResultText(overlay), nil
	}
	return mcp.NewToolResultText(url), nil
}
