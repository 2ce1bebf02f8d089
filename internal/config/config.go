// Package config loads and saves the coalcarbon configuration file.
//
// The global file lives at $COALCARBON_HOME/config.yaml (default
// ~/.coalcarbon/config.yaml). A project directory may carry its own
// .coalcarbon/config.yaml whose top-level sections replace the global ones.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the schema version written by Save.
const CurrentVersion = "1.0.0"

// supportedVersions is the semver constraint a config file version must meet.
const supportedVersions = "^1.0.0"

// Environment variables read by this package.
const (
	EnvHome       = "COALCARBON_HOME"
	EnvProjectDir = "COALCARBON_PROJECT_DIR"
	EnvLogLevel   = "COALCARBON_LOG_LEVEL"
	EnvLogFormat  = "COALCARBON_LOG_FORMAT"
)

const (
	dirName         = ".coalcarbon"
	configFileName  = "config.yaml"
	sessionFileName = "session.yaml"
	logFileName     = "coalcarbon.log"
	outputTypeFile  = "file"
)

// Output formats accepted for output.default_format.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config is the full configuration document.
type Config struct {
	Version string        `yaml:"version"`
	Output  OutputConfig  `yaml:"output"`
	Gap     GapConfig     `yaml:"gap"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`

	configPath string
}

// OutputConfig controls how results are printed and where reports are written.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	ExportFormat  string `yaml:"export_format"`
	ExportDir     string `yaml:"export_dir"`
}

// GapConfig holds the monthly target and sequestration capacity in kg CO2e.
type GapConfig struct {
	Target        float64 `yaml:"target"`
	Sequestration float64 `yaml:"sequestration"`
}

// AuthConfig configures the login gate. Username and PasswordHash (bcrypt)
// replace the demo credentials when both are set.
type AuthConfig struct {
	Username     string        `yaml:"username,omitempty"`
	PasswordHash string        `yaml:"password_hash,omitempty"`
	LoginDelay   time.Duration `yaml:"login_delay"`
	Persist      bool          `yaml:"persist"`
	SessionFile  string        `yaml:"session_file,omitempty"`
}

// LoggingConfig mirrors logging.Config in YAML form.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// MetricsConfig enables the prometheus textfile output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// HomeDir returns $COALCARBON_HOME, or ~/.coalcarbon.
func HomeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(userHome, dirName)
}

// New returns the default configuration bound to the global config path.
func New() *Config {
	home := HomeDir()
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: OutputTable,
			ExportFormat:  "json",
			ExportDir:     ".",
		},
		Gap: GapConfig{
			Target:        1000,
			Sequestration: 200,
		},
		Auth: AuthConfig{
			LoginDelay:  time.Second,
			Persist:     true,
			SessionFile: filepath.Join(home, sessionFileName),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		configPath: filepath.Join(home, configFileName),
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks the schema version and every enumerated field.
func (c *Config) Validate() error {
	var errs []error

	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if v, verr := semver.NewVersion(c.Version); verr != nil {
		errs = append(errs, fmt.Errorf("version %q is not a semantic version: %w", c.Version, verr))
	} else if !constraint.Check(v) {
		errs = append(errs, fmt.Errorf("version %s is not supported (want %s)", c.Version, supportedVersions))
	}

	switch c.Output.DefaultFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output.default_format %q must be table, json or yaml", c.Output.DefaultFormat))
	}
	switch strings.ToLower(c.Output.ExportFormat) {
	case "json", "csv", "pdf", "xml", "all":
	default:
		errs = append(errs, fmt.Errorf("output.export_format %q must be json, csv, pdf, xml or all", c.Output.ExportFormat))
	}

	if c.Auth.LoginDelay < 0 {
		errs = append(errs, fmt.Errorf("auth.login_delay must be >= 0, got %s", c.Auth.LoginDelay))
	}
	if (c.Auth.Username == "") != (c.Auth.PasswordHash == "") {
		errs = append(errs, errors.New("auth.username and auth.password_hash must be set together"))
	}

	if _, lerr := zerolog.ParseLevel(c.Logging.Level); lerr != nil {
		errs = append(errs, fmt.Errorf("logging.level %q is invalid", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Get returns a setting by its dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "version":
		return c.Version, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.export_format":
		return c.Output.ExportFormat, nil
	case "output.export_dir":
		return c.Output.ExportDir, nil
	case "gap.target":
		return strconv.FormatFloat(c.Gap.Target, 'f', -1, 64), nil
	case "gap.sequestration":
		return strconv.FormatFloat(c.Gap.Sequestration, 'f', -1, 64), nil
	case "auth.username":
		return c.Auth.Username, nil
	case "auth.login_delay":
		return c.Auth.LoginDelay.String(), nil
	case "auth.persist":
		return strconv.FormatBool(c.Auth.Persist), nil
	case "auth.session_file":
		return c.Auth.SessionFile, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "metrics.textfile":
		return c.Metrics.Textfile, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set changes a setting by its dotted key. auth.password_hash is set from a
// bcrypt hash, never from plaintext.
//
//nolint:gocognit // flat key switch
func (c *Config) Set(key, value string) error {
	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.export_format":
		c.Output.ExportFormat = value
	case "output.export_dir":
		c.Output.ExportDir = value
	case "gap.target", "gap.sequestration":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		if key == "gap.target" {
			c.Gap.Target = f
		} else {
			c.Gap.Sequestration = f
		}
	case "auth.username":
		c.Auth.Username = value
	case "auth.password_hash":
		c.Auth.PasswordHash = value
	case "auth.login_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("auth.login_delay must be a duration: %w", err)
		}
		c.Auth.LoginDelay = d
	case "auth.persist":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auth.persist must be true or false: %w", err)
		}
		c.Auth.Persist = b
	case "auth.session_file":
		c.Auth.SessionFile = value
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "metrics.textfile":
		c.Metrics.Textfile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Keys lists the settings accepted by Get, in display order.
func Keys() []string {
	return []string{
		"version",
		"output.default_format", "output.export_format", "output.export_dir",
		"gap.target", "gap.sequestration",
		"auth.username", "auth.login_delay", "auth.persist", "auth.session_file",
		"logging.level", "logging.format", "logging.file",
		"metrics.textfile",
	}
}

//nolint:gochecknoglobals // Process-wide configuration loaded once per invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.Mutex
)

// GetGlobalConfig loads the global configuration (plus any project overlay)
// on first use. Load failures fall back to defaults with a warning.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfig != nil {
		return globalConfig
	}

	cfg, err := Load(filepath.Join(HomeDir(), configFileName))
	if err != nil {
		logger := GetLogger()
		logger.Warn().Err(err).Msg("using default configuration")
		cfg = New()
	}
	if projectDir := GetResolvedProjectDir(); projectDir != "" {
		cfg = overlayProjectConfig(cfg, projectDir)
	}
	globalConfig = cfg
	return globalConfig
}

// SetGlobalConfig replaces the global configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest forgets the loaded global configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// EnsureLogDir creates the directory of the configured log file.
func EnsureLogDir() error {
	file := GetGlobalConfig().Logging.File
	if file == "" {
		file = filepath.Join(HomeDir(), "logs", logFileName)
	}
	return os.MkdirAll(filepath.Dir(file), 0o750)
}
