package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "warning", cfg.FailOn)
}

func TestLoad_NoFileNoFlags(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "warning", cfg.FailOn)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mc-analyzer.toml")
	contents := "format = \"json\"\nfail_on = \"error\"\nexclude = [\"vendor/**\"]\ndisable = [\"dead-store\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "error", cfg.FailOn)
	assert.True(t, cfg.IsDisabled(DeadStore))
	assert.False(t, cfg.IsDisabled(Unreachable))
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mc-analyzer.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"json\"\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "text", "")
	require.NoError(t, flags.Set("format", "text"))
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownAnalysis(t *testing.T) {
	cfg := Default()
	cfg.Disabled["not-a-real-analysis"] = true
	assert.Error(t, cfg.Validate())
}
