package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SHIFTGRID_LOG_LEVEL.
const EnvPrefix = "SHIFTGRID"

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds user settings. Values are resolved in order: defaults, the
// config file, then environment variables.
type Config struct {
	// LogLevel is the minimum level written to stderr
	LogLevel string `yaml:"log_level" split_words:"true" validate:"oneof=debug info warn error"`

	// ExportFormat is the default export encoding
	ExportFormat string `yaml:"export_format" split_words:"true" validate:"oneof=xlsx csv"`

	// CancelWait is how long an import waits after the file prompt is
	// dismissed before treating it as cancelled
	CancelWait time.Duration `yaml:"cancel_wait" split_words:"true" validate:"gt=0"`

	// MaxImportBytes is the largest file import accepts
	MaxImportBytes int64 `yaml:"max_import_bytes" split_words:"true" validate:"gt=0"`

	// ExportsDir overrides the exports directory; relative to the root
	ExportsDir string `yaml:"exports_dir,omitempty" split_words:"true"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "warn",
		ExportFormat:   "xlsx",
		CancelWait:     time.Second,
		MaxImportBytes: 10 << 20,
	}
}

// Load reads the config file at path (a missing file is fine), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v fails %s", fe.Field(), fe.Value(), fieldRule(fe)))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func fieldRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
