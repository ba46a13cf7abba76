package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/casegallery/internal/gallery"
	"github.com/ziadkadry99/casegallery/internal/manifest"
)

func testCorpus(t *testing.T) (*gallery.Corpus, map[string]string) {
	t.Helper()
	entries := manifest.FromFiles(map[string][]byte{
		"M3-1-000/image-0001.jpg":            []byte("1"),
		"M3-1-000/image-0002.jpg":            []byte("2"),
		"M3-1-000/comments/c-image-0001.jpg": []byte("3"),
		"M3-1-000/M3-1-000.txt":              []byte("**Chest** X-ray"),
		"M4/image-0001.jpg":                  []byte("4"),
	})
	urls := map[string]string{}
	for _, e := range entries {
		urls[e.Path] = e.URL
	}
	return gallery.Build(entries, gallery.DefaultOptions(), nil), urls
}

// resultText concatenates the text content of a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and required properties.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_collections", listCollectionsTool, "list_collections"},
		{"get_collection", getCollectionTool, "get_collection"},
		{"get_note", getNoteTool, "get_note"},
		{"resolve_overlay", resolveOverlayTool, "resolve_overlay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	corpus, _ := testCorpus(t)
	srv := NewServer(corpus)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.corpus != corpus {
		t.Error("corpus not set correctly")
	}
}

func TestHandleListCollections(t *testing.T) {
	corpus, _ := testCorpus(t)
	srv := NewServer(corpus)

	result, err := srv.handleListCollections(context.Background(), call(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	for _, want := range []string{"**M3-1-000**: 2 images, 1 overlays", "**M4**: 1 images, 0 overlays"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}

	empty := NewServer(gallery.Build(nil, gallery.DefaultOptions(), nil))
	result, _ = empty.handleListCollections(context.Background(), call(nil))
	if result.IsError || !strings.Contains(resultText(t, result), "No collections") {
		t.Errorf("empty corpus result = %+v", result)
	}
}

func TestHandleListCollections_CountsOverlayFiles(t *testing.T) {
	// Two images share one overlay: one overlay file, two paired images.
	corpus := gallery.Build(manifest.FromFiles(map[string][]byte{
		"case/image-0001-a.jpg":          []byte("1"),
		"case/image-0001-b.jpg":          []byte("2"),
		"case/comments/c-image-0001.jpg": []byte("3"),
	}), gallery.DefaultOptions(), nil)
	if n := len(corpus.OverlayMapping("case")); n != 2 {
		t.Fatalf("paired images = %d, want 2", n)
	}

	result, err := NewServer(corpus).handleListCollections(context.Background(), call(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "**case**: 2 images, 1 overlays") {
		t.Errorf("list_collections = %q", text)
	}
}

func TestHandleGetCollection(t *testing.T) {
	corpus, urls := testCorpus(t)
	srv := NewServer(corpus)
	ctx := context.Background()

	t.Run("existing", func(t *testing.T) {
		result, err := srv.handleGetCollection(ctx, call(map[string]any{"collection": "M3-1-000"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		want := "1. " + urls["M3-1-000/image-0001.jpg"] + " (overlay: " + urls["M3-1-000/comments/c-image-0001.jpg"] + ")"
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
		if !strings.Contains(text, "**Chest** X-ray") {
			t.Error("note missing from collection description")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		result, err := srv.handleGetCollection(ctx, call(map[string]any{"collection": "nope"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown collection")
		}
	})

	t.Run("missing parameter", func(t *testing.T) {
		result, _ := srv.handleGetCollection(ctx, call(map[string]any{}))
		if !result.IsError {
			t.Error("expected error for missing collection")
		}
	})
}

func TestHandleGetNote(t *testing.T) {
	corpus, _ := testCorpus(t)
	srv := NewServer(corpus)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		want    string
	}{
		{"text", map[string]any{"collection": "M3-1-000"}, false, "**Chest** X-ray"},
		{"html", map[string]any{"collection": "M3-1-000", "format": "html"}, false, "<strong>Chest</strong>"},
		{"placeholder", map[string]any{"collection": "M4"}, false, "No description"},
		{"bad format", map[string]any{"collection": "M4", "format": "pdf"}, true, ""},
		{"unknown", map[string]any{"collection": "nope"}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleGetNote(ctx, call(tt.args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError != tt.wantErr {
				t.Fatalf("IsError = %v, want %v", result.IsError, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(resultText(t, result), tt.want) {
				t.Errorf("result %q does not contain %q", resultText(t, result), tt.want)
			}
		})
	}
}

func TestHandleResolveOverlay(t *testing.T) {
	corpus, urls := testCorpus(t)
	srv := NewServer(corpus)
	ctx := context.Background()

	img1 := urls["M3-1-000/image-0001.jpg"]
	img2 := urls["M3-1-000/image-0002.jpg"]

	result, _ := srv.handleResolveOverlay(ctx, call(map[string]any{"image_url": img1}))
	if got := resultText(t, result); got != urls["M3-1-000/comments/c-image-0001.jpg"] {
		t.Errorf("resolve(img1) = %q", got)
	}
	result, _ = srv.handleResolveOverlay(ctx, call(map[string]any{"image_url": img2}))
	if got := resultText(t, result); got != img2 {
		t.Errorf("resolve(img2) = %q, want fallback to itself", got)
	}
	result, _ = srv.handleResolveOverlay(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing image_url")
	}
}
