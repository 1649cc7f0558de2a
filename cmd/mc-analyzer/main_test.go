package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/mc-analyzer/internal/version"
)

func TestVersion(t *testing.T) {
	if version.Short() == "" {
		t.Error("version should not be empty")
	}
}

func TestAnalyzeCmd_TextOutputOnCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.mc")
	if err := os.WriteFile(path, []byte("int main() { return 0; }"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewAnalyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); !bytes.Contains([]byte(got), []byte("No errors found.")) {
		t.Errorf("expected clean-file output, got %q", got)
	}
}

func TestCheckCmd_DefaultsToText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.mc")
	if err := os.WriteFile(path, []byte("int main() { return 0; }"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); !bytes.Contains([]byte(got), []byte("=== Analyzing")) {
		t.Errorf("expected a per-file header, got %q", got)
	}
}
