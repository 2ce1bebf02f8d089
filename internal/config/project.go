package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/coalcarbon/internal/logging"
)

var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the project .coalcarbon directory for GetGlobalConfig.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .coalcarbon directory.
// It checks (in order):
//  1. flagValue (--project-dir)
//  2. COALCARBON_PROJECT_DIR
//  3. the nearest ancestor of startDir holding .coalcarbon/config.yaml
//
// The result is absolute, or empty when no project is found. The global
// home directory is never treated as a project.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	dir := toAbsProjectDir(ctx, startDir)
	home := filepath.Clean(HomeDir())
	for {
		if dir != home {
			if _, err := os.Stat(filepath.Join(dir, configFileName)); err == nil {
				return dir
			}
		}
		root := filepath.Dir(filepath.Dir(dir))
		next := filepath.Join(root, dirName)
		if next == dir {
			return ""
		}
		dir = next
	}
}

// NewWithProjectDir returns the defaults with the project config in
// projectDir merged on top. An empty projectDir or missing file yields New().
func NewWithProjectDir(projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}
	return overlayProjectConfig(cfg, projectDir)
}

// overlayProjectConfig merges projectDir/config.yaml onto a copy of base.
// Merge failures are logged and base is returned unchanged.
func overlayProjectConfig(base *Config, projectDir string) *Config {
	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return base
	}

	merged := *base
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logger := GetLogger()
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return base
	}
	return &merged
}

// toAbsProjectDir makes dir absolute and appends .coalcarbon unless present.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == dirName {
		return abs
	}
	return filepath.Join(abs, dirName)
}
