package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration. It is threaded
// explicitly into the scanner, resolver, and assembler rather than held as
// process-wide state, so multiple galleries can be built in one process.
type Config struct {
	Root    string        `mapstructure:"root"`
	Output  string        `mapstructure:"output"`
	BaseURL string        `mapstructure:"base_url"`
	Workers int           `mapstructure:"workers"`
	Format  string        `mapstructure:"format"`
	Exclude []string      `mapstructure:"exclude"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/gallerist/config.yaml
//   - $HOME/.config/gallerist/config.yaml
//
// Environment variables are prefixed with GALLERIST_
// (e.g., GALLERIST_BASE_URL).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "gallerist"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "gallerist"))

	v.SetEnvPrefix("GALLERIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for _, p := range []*string{&cfg.Root, &cfg.Output} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return &cfg, nil
}

// setDefaults registers every default on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("exclude", DefaultExclusions)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.components", map[string]string{})
}

// Validate checks field values and applies floors where a zero value means
// "use the default".
func (c *Config) Validate() error {
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	switch c.Format {
	case "records", "urls", "":
	default:
		return fmt.Errorf("unknown format %q (want records or urls)", c.Format)
	}
	return nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "gallerist"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gallerist"), nil
}

// StateDir returns $XDG_STATE_HOME/gallerist/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "gallerist")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Gallerist Configuration

# Directory to scan for media files
root: %s

# Manifest output path
output: %s

# Public URL prefix for entries
base_url: %s

# Concurrent per-file timestamp resolutions
workers: %d

# Output format: records (canonical) or urls (legacy flat URL list)
format: %s

# Paths and glob patterns to exclude from scanning
exclude:
  - .git
  - .thumbnails
  - node_modules

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Per-component log levels
  components: {}
`, DefaultRoot, DefaultOutput, DefaultBaseURL, DefaultWorkers, DefaultFormat)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}
