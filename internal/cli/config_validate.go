package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (global file plus project overlay):

- version must be a 1.x semantic version
- output formats must be known
- auth.username and auth.password_hash must be set together, and the hash
  must be a bcrypt hash
- auth.login_delay must not be negative
- logging level and format must be known`,
		Example: `  coalcarbon config validate
  coalcarbon config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated settings")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return validationError(fmt.Errorf("configuration validation failed: %w", err))
	}
	if _, err := auth.NewVerifier(cfg.Auth.Username, cfg.Auth.PasswordHash); err != nil {
		return validationError(fmt.Errorf("configuration validation failed: %w", err))
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			cmd.Printf("  %s = %s\n", key, value)
		}
		if dir := config.GetResolvedProjectDir(); dir != "" {
			cmd.Printf("  project overlay: %s\n", dir)
		}
	}

	return nil
}
