package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/coalcarbon/internal/config"
)

func writeProjectConfig(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".coalcarbon")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestResolveProjectDir_FlagThenEnv(t *testing.T) {
	setupHome(t)
	flagDir := t.TempDir()
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	ctx := context.Background()
	assert.Equal(t, filepath.Join(flagDir, ".coalcarbon"), config.ResolveProjectDir(ctx, flagDir, ""))
	assert.Equal(t, filepath.Join(envDir, ".coalcarbon"), config.ResolveProjectDir(ctx, "", ""))

	suffixed := filepath.Join(flagDir, ".coalcarbon")
	assert.Equal(t, suffixed, config.ResolveProjectDir(ctx, suffixed, ""), "suffix not doubled")
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	setupHome(t)
	root := t.TempDir()
	want := writeProjectConfig(t, root, "gap:\n  target: 10\n")
	deep := filepath.Join(root, "pit", "north", "shift-a")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	assert.Equal(t, want, config.ResolveProjectDir(context.Background(), "", deep))
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	setupHome(t)
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", t.TempDir()))
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	setupHome(t)

	assert.Equal(t, config.New(), config.NewWithProjectDir(""))

	dir := writeProjectConfig(t, t.TempDir(), "output:\n  default_format: json\n")
	cfg := config.NewWithProjectDir(dir)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)

	broken := writeProjectConfig(t, t.TempDir(), "output: [")
	assert.Equal(t, "table", config.NewWithProjectDir(broken).Output.DefaultFormat)

	assert.Equal(t, config.New(), config.NewWithProjectDir(filepath.Join(t.TempDir(), ".coalcarbon")))
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	config.SetResolvedProjectDir("/srv/site/.coalcarbon")
	t.Cleanup(func() { config.SetResolvedProjectDir("") })
	assert.Equal(t, "/srv/site/.coalcarbon", config.GetResolvedProjectDir())
}
