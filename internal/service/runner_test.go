package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mc-analyzer/internal/config"
)

func TestAnalyzeSource_NoDiagnostics(t *testing.T) {
	r := NewRunner(config.Default())
	diags := r.AnalyzeSource("int main() { return 0; }")
	assert.Empty(t, diags)
}

func TestAnalyzeSource_UnreachableFlagged(t *testing.T) {
	r := NewRunner(config.Default())
	diags := r.AnalyzeSource("int main() { return 0; print(1); }")
	found := false
	for _, d := range diags {
		if d.Stage == "unreachable" {
			found = true
		}
	}
	assert.True(t, found, "expected an unreachable diagnostic, got %v", diags)
}

func TestAnalyzeSource_RespectsDisabledAnalyses(t *testing.T) {
	cfg := config.Default()
	cfg.Disabled[config.Unreachable] = true
	r := NewRunner(cfg)
	diags := r.AnalyzeSource("int main() { return 0; print(1); }")
	for _, d := range diags {
		assert.NotEqual(t, "unreachable", d.Stage)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mc")
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }"), 0o644))

	files, err := DiscoverFiles(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscoverFiles_DirectorySortedAndExcluded(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mc", "a.mc", "skip.mc", "ignore.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("int main() { return 0; }"), 0o644))
	}
	files, err := DiscoverFiles(dir, []string{filepath.Join(dir, "skip.mc")})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.mc", filepath.Base(files[0]))
	assert.Equal(t, "b.mc", filepath.Base(files[1]))
}

func TestRunAll_AggregatesPassFail(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mc")
	bad := filepath.Join(dir, "bad.mc")
	require.NoError(t, os.WriteFile(good, []byte("int main() { return 0; }"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("int main() { return 0; print(1); }"), 0o644))

	r := NewRunner(config.Default())
	files, err := DiscoverFiles(dir, nil)
	require.NoError(t, err)

	report := r.RunAll(context.Background(), files, nil)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.ID)
}

func TestRunAll_MissingFileReportsError(t *testing.T) {
	r := NewRunner(config.Default())
	report := r.RunAll(context.Background(), []string{"/nonexistent/path.mc"}, nil)
	require.Len(t, report.Files, 1)
	assert.NotEmpty(t, report.Files[0].Err)
	assert.Equal(t, 1, report.Failed)
}
