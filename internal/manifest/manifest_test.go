package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files under a fresh temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestWalk_CollectsImagesOverlaysAndNotes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"M3-1-000/image-0001.jpg":            "a",
		"M3-1-000/image-0002.JPG":            "b",
		"M3-1-000/comments/c-image-0001.jpg": "c",
		"M3-1-000/M3-1-000.txt":              "Case description",
		"M3-1-000/readme.md":                 "ignored",
		"M3-1-000/.hidden/image-9.jpg":       "ignored",
	})

	entries, err := Walk(Config{Root: root, Extensions: []string{".png", ".jpg", ".jpeg"}}, nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := map[string]Entry{}
	for _, e := range entries {
		got[e.Path] = e
	}
	for _, want := range []string{
		"M3-1-000/image-0001.jpg",
		"M3-1-000/image-0002.JPG",
		"M3-1-000/comments/c-image-0001.jpg",
		"M3-1-000/M3-1-000.txt",
	} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected %q in manifest", want)
		}
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(entries))
	}

	note := got["M3-1-000/M3-1-000.txt"]
	if note.Text != "Case description" {
		t.Errorf("note text = %q", note.Text)
	}
	img := got["M3-1-000/image-0001.jpg"]
	if img.Text != "" {
		t.Error("image entries should not carry text")
	}
	if len(img.Hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(img.Hash))
	}
	if img.AbsPath == "" || img.Size != 1 {
		t.Errorf("unexpected entry metadata: %+v", img)
	}
}

func TestWalk_NaturalOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"case/image-10.jpg": "x",
		"case/image-2.jpg":  "y",
		"case/image-1.jpg":  "z",
	})

	entries, err := Walk(Config{Root: root, Extensions: []string{".jpg"}}, nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	var order []string
	for _, e := range entries {
		order = append(order, e.Path)
	}
	want := "case/image-1.jpg,case/image-2.jpg,case/image-10.jpg"
	if strings.Join(order, ",") != want {
		t.Errorf("order = %v, want %s", order, want)
	}
}

func TestWalk_Exclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/image-1.jpg":      "x",
		"drafts/image-1.jpg": "y",
		"drafts/notes.txt":   "z",
	})
	entries, err := Walk(Config{Root: root, Extensions: []string{".jpg"}, Exclude: []string{"drafts/**"}}, nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Path, "drafts/") {
			t.Errorf("exclude let through %s", e.Path)
		}
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(Config{Root: filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestAssetURL(t *testing.T) {
	tests := []struct {
		rel, hash, want string
	}{
		{"M3/image-0001.jpg", "1a2b3c4d5e6f", "/assets/M3/image-0001-1a2b3c4d.jpg"},
		{"M3/comments/c-image-0001.jpg", "ffeeddccbbaa", "/assets/M3/comments/c-image-0001-ffeeddcc.jpg"},
		{"a/b/x.png", "", "/assets/a/b/x.png"},
	}
	for _, tt := range tests {
		if got := AssetURL(tt.rel, tt.hash); got != tt.want {
			t.Errorf("AssetURL(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestFromFiles(t *testing.T) {
	entries := FromFiles(map[string][]byte{
		"collA/image-0002.jpg": []byte("2"),
		"collA/image-0001.jpg": []byte("1"),
		"collA/collA.txt":      []byte("hello"),
	})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Path != "collA/collA.txt" || entries[1].Path != "collA/image-0001.jpg" {
		t.Errorf("unexpected order: %s, %s", entries[0].Path, entries[1].Path)
	}
	if entries[0].Text != "hello" {
		t.Errorf("note text = %q", entries[0].Text)
	}
	if !strings.HasPrefix(entries[1].URL, "/assets/collA/image-0001-") {
		t.Errorf("unexpected URL %q", entries[1].URL)
	}

	again := FromFiles(map[string][]byte{
		"collA/image-0001.jpg": []byte("1"),
	})
	if again[0].URL != entries[1].URL {
		t.Error("URLs must be deterministic for identical content")
	}
}

func TestMatchesInclude(t *testing.T) {
	include := IncludePatterns([]string{".png", ".jpg", ".jpeg"})
	tests := []struct {
		path string
		want bool
	}{
		{"a/image-1.jpg", true},
		{"a/image-1.JPEG", true},
		{"a/comments/c-image-1.png", true},
		{"a/notes.txt", true},
		{"a/video.mp4", false},
		{"top.png", true},
	}
	for _, tt := range tests {
		if got := MatchesInclude(tt.path, include); got != tt.want {
			t.Errorf("MatchesInclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestEntryOpen(t *testing.T) {
	root := writeTree(t, map[string]string{"collA/image-0001.jpg": "disk"})
	entries, err := Walk(Config{Root: root, Extensions: []string{".jpg"}}, nil)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Walk() = %v, %v", entries, err)
	}
	b, err := entries[0].Open()
	if err != nil || string(b) != "disk" {
		t.Errorf("Open() from disk = %q, %v", b, err)
	}

	mem := FromFiles(map[string][]byte{"collA/image-0001.jpg": []byte("memory")})
	b, err = mem[0].Open()
	if err != nil || string(b) != "memory" {
		t.Errorf("Open() from memory = %q, %v", b, err)
	}

	gone := Entry{Path: "x.jpg", AbsPath: filepath.Join(root, "missing.jpg")}
	if _, err := gone.Open(); err == nil {
		t.Error("expected error for missing file")
	}
}
