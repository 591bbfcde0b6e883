package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// EnvConfigPath names the environment variable consulted by LoadOrDefault
// when no path is given
const EnvConfigPath = "MYPL_CONFIG"

// Config holds the complete toolchain configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Checker CheckerConfig `toml:"checker"`
	Output  OutputConfig  `toml:"output"`
	Watch   WatchConfig   `toml:"watch"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// CheckerConfig holds type checker settings
type CheckerConfig struct {
	// BuiltinsFile is an optional YAML table replacing the default built-ins
	BuiltinsFile string `toml:"builtins_file"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Color  bool   `toml:"color"`
	Indent string `toml:"indent"`
}

// WatchConfig holds settings for check --watch
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.Checker.BuiltinsFile = os.ExpandEnv(cfg.Checker.BuiltinsFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to $MYPL_CONFIG and then to the
// defaults when both are empty
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.Output.Indent == "" {
		c.Output.Indent = "    "
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := mypllog.ParseLevel(c.General.LogLevel); err != nil {
		return fmt.Errorf("general.log_level: %w", err)
	}
	if _, err := mypllog.ParseFormat(c.General.LogFormat); err != nil {
		return fmt.Errorf("general.log_format: %w", err)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce.Duration)
	}
	for _, r := range c.Output.Indent {
		if r != ' ' && r != '\t' {
			return fmt.Errorf("output.indent: only spaces and tabs allowed, got %q", c.Output.Indent)
		}
	}
	return nil
}
