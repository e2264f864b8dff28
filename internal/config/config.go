package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/festival-jury/pkg/db"
)

const (
	defaultLogDir = "logs"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL       string   `yaml:"databaseURL" validate:"required"`
	MinRatingsPerFilm int      `yaml:"minRatingsPerFilm" validate:"min=1"`
	MaxFilmsPerJury   int      `yaml:"maxFilmsPerJury" validate:"min=1"`
	EligibleStatuses  []string `yaml:"eligibleStatuses,omitempty" validate:"dive,required"`
	LogDir            string   `yaml:"logDir,omitempty"`

	// MetricsTextfile is where run metrics are written in Prometheus text format (optional)
	MetricsTextfile string `yaml:"metricsTextfile,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "festival_config.test.yaml" in the current
// directory, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("festival_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyDefaults fills optional fields that were left empty
func applyDefaults(cfg *Config) {
	if len(cfg.EligibleStatuses) == 0 {
		cfg.EligibleStatuses = []string{db.FilmStatusApproved}
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
}

// findConfigFile searches for the named config file in the current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
