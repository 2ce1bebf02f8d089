package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/coalcarbon/internal/config"
)

// resolveOutputFormat returns flagValue, or the configured default when the
// flag is empty, and rejects unknown formats.
func resolveOutputFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetGlobalConfig().Output.DefaultFormat
	}
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
		return format, nil
	default:
		return "", validationError(fmt.Errorf("unsupported output format %q (expected table, json or yaml)", flagValue))
	}
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // YAML indent.
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}
