package gallery

import "testing"

func TestClassify(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		path       string
		ok         bool
		kind       Kind
		collection string
		filename   string
	}{
		{"M3-1-000/image-0001.jpg", true, KindImage, "M3-1-000", "image-0001.jpg"},
		{"M3-1-000/comments/c-image-0001.jpg", true, KindOverlay, "M3-1-000", "c-image-0001.jpg"},
		{"M3-1-000/M3-1-000.txt", true, KindNote, "M3-1-000", "M3-1-000.txt"},
		{"chest/M3-1-000/image-0001.png", true, KindImage, "chest/M3-1-000", "image-0001.png"},
		{"chest/M3-1-000/comments/c-image-0001.jpeg", true, KindOverlay, "chest/M3-1-000", "c-image-0001.jpeg"},
		{"./M3/image-0001.jpg", true, KindImage, "M3", "image-0001.jpg"},
		// A plain image inside the overlay folder forms its own collection.
		{"M3/comments/image-0001.jpg", true, KindImage, "M3/comments", "image-0001.jpg"},

		// Too few segments.
		{"image-0001.jpg", false, KindUnknown, "", ""},
		{"comments/c-image-0001.jpg", false, KindUnknown, "", ""},
		{"notes.txt", false, KindUnknown, "", ""},
		{"", false, KindUnknown, "", ""},
		// Marker outside the overlay folder.
		{"M3/c-image-0001.jpg", false, KindUnknown, "", ""},
		// Extension outside the closed set, or differently cased.
		{"M3/image-0001.gif", false, KindUnknown, "", ""},
		{"M3/image-0001.JPG", false, KindUnknown, "", ""},
		{"M3/README", false, KindUnknown, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := l.Classify(tt.path)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Collection != tt.collection {
				t.Errorf("collection = %q, want %q", got.Collection, tt.collection)
			}
			if got.Filename != tt.filename {
				t.Errorf("filename = %q, want %q", got.Filename, tt.filename)
			}
			if got.IsOverlay() != (tt.kind == KindOverlay) {
				t.Errorf("IsOverlay = %v", got.IsOverlay())
			}
		})
	}
}

func TestClassifyCustomLayout(t *testing.T) {
	l := Layout{OverlayDir: "annotated", OverlayMarker: "ann_", Extensions: []string{".png"}}

	got, ok := l.Classify("case7/annotated/ann_slice-03.png")
	if !ok || got.Kind != KindOverlay {
		t.Fatalf("expected overlay, got %+v ok=%v", got, ok)
	}
	if base := got.BaseFilename(l); base != "slice-03.png" {
		t.Errorf("BaseFilename = %q, want slice-03.png", base)
	}

	if _, ok := l.Classify("case7/comments/c-slice-03.png"); ok {
		t.Error("default convention must not apply to a custom layout")
	}
	if _, ok := l.Classify("case7/slice-03.jpg"); ok {
		t.Error("jpg is outside the configured extension set")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindImage: "image", KindOverlay: "overlay", KindNote: "note", KindUnknown: "unknown"} {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
