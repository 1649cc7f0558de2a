package testrunner

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGoldenFixtures runs every testdata/golden/*.mc file through the
// harness rather than hand-writing one Go test per case.
func TestGoldenFixtures(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "golden"))
	if err != nil {
		t.Fatalf("resolve golden dir: %v", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read golden dir: %v", err)
	}

	found := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mc" {
			continue
		}
		found++
		path := filepath.Join(root, entry.Name())
		t.Run(entry.Name(), func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			result, err := Run(path, string(data))
			if err != nil {
				t.Fatalf("%v", err)
			}
			if !result.Passed() {
				t.Errorf("diagnostics %v\nunmatched expectations: %v\nunaccounted diagnostics: %v",
					result.Diagnostics, result.Unmatched, result.Extra)
			}
		})
	}
	if found == 0 {
		t.Fatal("no golden fixtures found under testdata/golden")
	}
}
