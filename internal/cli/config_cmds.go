package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/config"
	"github.com/rshade/coalcarbon/internal/tui"
)

const redacted = "<redacted>"

// NewConfigShowCmd prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  coalcarbon config show
  coalcarbon config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = config.OutputYAML
			}
			format = strings.ToLower(format)
			if format != config.OutputJSON && format != config.OutputYAML {
				return validationError(fmt.Errorf("unsupported output format %q (expected json or yaml)", format))
			}

			cfg := *config.GetGlobalConfig()
			if cfg.Auth.PasswordHash != "" {
				cfg.Auth.PasswordHash = redacted
			}
			return writeStructured(cmd.OutOrStdout(), format, cfg)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", config.OutputYAML, "output format: yaml or json")
	return cmd
}

// NewConfigGetCmd prints one configuration value.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  "Prints one setting of the effective configuration. Keys: " + strings.Join(config.Keys(), ", "),
		Example: `  coalcarbon config get gap.target
  coalcarbon config get output.export_format`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return validationError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

// NewConfigSetCmd changes one value in the global configuration file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Sets one setting in the global configuration file and saves it.
The result is validated before it is written. Use "config credentials" to
change the login credential.`,
		Example: `  coalcarbon config set gap.target 60000
  coalcarbon config set auth.login_delay 0s
  coalcarbon config set output.export_format all`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key == "auth.password_hash" {
				return validationError(errors.New(`auth.password_hash is set with "config credentials"`))
			}
			return updateGlobalConfig(cmd, func(cfg *config.Config) error {
				return cfg.Set(key, value)
			}, fmt.Sprintf("Set %s = %s", key, value))
		},
	}
}

// NewConfigCredentialsCmd replaces the demo login with a bcrypt-hashed credential.
func NewConfigCredentialsCmd() *cobra.Command {
	var (
		username      string
		passwordStdin bool
		reset         bool
	)
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Configure the login credential",
		Long: `Stores a username and a bcrypt hash of its password in the global
configuration. The plaintext password is never written. --reset removes the
stored credential so the built-in demo login applies again.`,
		Example: `  coalcarbon config credentials --username ops
  echo "$PASS" | coalcarbon config credentials --username ops --password-stdin
  coalcarbon config credentials --reset`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reset {
				return updateGlobalConfig(cmd, func(cfg *config.Config) error {
					cfg.Auth.Username = ""
					cfg.Auth.PasswordHash = ""
					return nil
				}, "Credential removed, demo login restored")
			}
			if username == "" {
				return validationError(errors.New("--username is required"))
			}

			password, err := readNewPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			return updateGlobalConfig(cmd, func(cfg *config.Config) error {
				cfg.Auth.Username = username
				cfg.Auth.PasswordHash = string(hash)
				return nil
			}, "Credential saved for "+username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().BoolVar(&reset, "reset", false, "remove the stored credential")
	cmd.MarkFlagsMutuallyExclusive("reset", "username")
	return cmd
}

func readNewPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		password, err := ReadPasswordLine(cmd.InOrStdin())
		if err != nil {
			return "", validationError(err)
		}
		return password, nil
	}
	if !tui.IsInputTTY() {
		return "", validationError(errors.New("no terminal for the password prompt, use --password-stdin"))
	}
	fmt.Fprint(cmd.ErrOrStderr(), "New password: ")
	password, err := terminalPasswordReader()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(password) == 0 {
		return "", validationError(errors.New("empty password"))
	}
	return string(password), nil
}

// updateGlobalConfig applies change to the global file (without any project
// overlay), validates it and saves it.
func updateGlobalConfig(cmd *cobra.Command, change func(*config.Config) error, done string) error {
	path := config.New().ConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := change(cfg); err != nil {
		return validationError(err)
	}
	if err := cfg.Validate(); err != nil {
		return validationError(err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	config.SetGlobalConfig(nil)

	logger.Debug().Str("path", path).Msg("configuration saved")
	cmd.Printf("%s\n", done)
	return nil
}
