package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/coalcarbon/internal/config"
)

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func customTarget() *config.Config {
	cfg := config.New()
	cfg.Output.DefaultFormat = "yaml"
	cfg.Gap.Target = 5000
	cfg.Auth.LoginDelay = 3 * time.Second
	cfg.Metrics.Textfile = "/var/lib/node_exporter/coalcarbon.prom"
	return cfg
}

func TestShallowMergeYAML_ReplacesSection(t *testing.T) {
	setupHome(t)
	target := customTarget()

	err := config.ShallowMergeYAML(target, writeOverlay(t, `
auth:
  persist: false
`))
	require.NoError(t, err)

	assert.False(t, target.Auth.Persist)
	assert.Equal(t, time.Second, target.Auth.LoginDelay, "missing key reverts to default")
	assert.Equal(t, "yaml", target.Output.DefaultFormat, "other sections untouched")
	assert.InDelta(t, 5000.0, target.Gap.Target, 0)
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	setupHome(t)
	target := customTarget()

	err := config.ShallowMergeYAML(target, writeOverlay(t, `
output:
  default_format: json
  export_dir: reports
metrics:
  textfile: ""
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, "reports", target.Output.ExportDir)
	assert.Empty(t, target.Metrics.Textfile)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "console", target.Logging.Format)
}

func TestShallowMergeYAML_IgnoresUnknownAndVersion(t *testing.T) {
	setupHome(t)
	target := customTarget()

	err := config.ShallowMergeYAML(target, writeOverlay(t, `
version: 9.9.9
plugins:
  foo: bar
`))
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, target.Version)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	setupHome(t)

	for _, content := range []string{"", "# nothing here\n"} {
		target := customTarget()
		require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
		assert.Equal(t, customTarget(), target)
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	setupHome(t)

	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(config.New(), writeOverlay(t, "gap: [")))
	require.Error(t, config.ShallowMergeYAML(config.New(), writeOverlay(t, "gap:\n  target: many\n")))
}
