package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "M3-1-000/image-0001.jpg")
	r.Update(2, "M3-1-000/image-0002.jpg")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Indexing 2 files", "[1/2] M3-1-000/image-0001.jpg", "[2/2]", "Indexing complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("Indexing").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}
