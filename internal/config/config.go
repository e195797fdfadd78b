package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for esglens.
type FileConfig struct {
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Enable          *string `yaml:"enable,omitempty"`
	Disable         *string `yaml:"disable,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	Company         *string `yaml:"company,omitempty"`
	Rules           *string `yaml:"rules,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`

	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig selects the slog handler used by the CLI and server.
type LoggingConfig struct {
	Format *string `yaml:"format,omitempty"` // json | text
	Level  *string `yaml:"level,omitempty"`  // debug | info | warn | error
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .esglens.yml/.yaml and esglens.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".esglens.yml", ".esglens.yaml", "esglens.yml", "esglens.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "esglens", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// ApplyEnv overlays ESGLENS_* environment variables onto fc. Environment
// values win over file values but lose to explicit CLI flags.
func (fc FileConfig) ApplyEnv() FileConfig {
	if v := os.Getenv("ESGLENS_RULES"); v != "" {
		fc.Rules = &v
	}
	if v := os.Getenv("ESGLENS_LOG_FORMAT"); v != "" {
		fc.Logging = fc.logging()
		fc.Logging.Format = &v
	}
	if v := os.Getenv("ESGLENS_LOG_LEVEL"); v != "" {
		fc.Logging = fc.logging()
		fc.Logging.Level = &v
	}
	return fc
}

func (fc FileConfig) logging() *LoggingConfig {
	if fc.Logging == nil {
		return &LoggingConfig{}
	}
	lc := *fc.Logging
	return &lc
}

// LogFormat returns the configured log format or "json".
func (fc FileConfig) LogFormat() string {
	if fc.Logging == nil || fc.Logging.Format == nil {
		return "json"
	}
	return *fc.Logging.Format
}

// LogLevel returns the configured log level or "info".
func (fc FileConfig) LogLevel() string {
	if fc.Logging == nil || fc.Logging.Level == nil {
		return "info"
	}
	return *fc.Logging.Level
}
