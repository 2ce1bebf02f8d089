package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys an overlay may replace.
const (
	keyOutput  = "output"
	keyGap     = "gap"
	keyAuth    = "auth"
	keyLogging = "logging"
	keyMetrics = "metrics"
)

//nolint:gochecknoglobals // Lookup table.
var knownTopLevelKeys = map[string]bool{
	keyOutput:  true,
	keyGap:     true,
	keyAuth:    true,
	keyLogging: true,
	keyMetrics: true,
}

// ShallowMergeYAML applies the top-level sections found in overlayPath to
// target. A section present in the overlay replaces the whole target section;
// absent sections and unknown keys are left alone. version is never merged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = applySection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// applySection decodes node onto the default value of the named section, so
// keys missing from the overlay take their defaults rather than the target's.
func applySection(target *Config, key string, node *yaml.Node) error {
	defaults := New()
	switch key {
	case keyOutput:
		v := defaults.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyGap:
		v := defaults.Gap
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Gap = v
	case keyAuth:
		v := defaults.Auth
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Auth = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyMetrics:
		v := defaults.Metrics
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Metrics = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
