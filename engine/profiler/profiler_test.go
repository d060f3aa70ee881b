//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDumpBalancesScopes(t *testing.T) {
	Init(64)
	func() {
		defer Start("outer")()
		defer Start("inner")()
	}()
	// Left open on purpose; the dump closes it.
	Start("dangling")

	path := filepath.Join(t.TempDir(), "profile.json")
	if err := Dump(path); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ssFile
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	evs := doc.Profiles[0].Events
	opens, closes := 0, 0
	for _, e := range evs {
		switch e.Type {
		case "O":
			opens++
		case "C":
			closes++
		}
	}
	if opens != 3 || closes != 3 {
		t.Fatalf("opens=%d closes=%d", opens, closes)
	}
	if doc.Shared.Frames[evs[0].Frame].Name != "outer" {
		t.Fatalf("first frame = %q", doc.Shared.Frames[evs[0].Frame].Name)
	}
}
