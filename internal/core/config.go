// Package core contains the business logic for primo: the command parser,
// the command set, the ordered task list, the session that executes commands
// against it, and configuration loading.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/primo/pkg/models"
)

// ConfigFileName is the base name of the configuration file looked up in the
// base path. A ".yaml" extension is optional.
const ConfigFileName = ".primoconfig"

// ConfigurationManager loads and validates the .primoconfig file.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *models.Config {
	return &models.Config{
		Assistant: models.AssistantConfig{
			Name: "El Primo",
		},
		Storage: models.StorageConfig{
			File:   "data/data.txt",
			Format: models.FormatText,
		},
		Events: models.EventsConfig{
			Enabled: true,
			File:    ".primo_events.jsonl",
		},
		Display: models.DisplayConfig{
			Color: true,
		},
	}
}

// LoadConfig reads .primoconfig from the base path using Viper. If the file
// does not exist, defaults are returned. PRIMO_* environment variables
// override file values (PRIMO_STORAGE_FORMAT for storage.format).
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("PRIMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("assistant.name", cfg.Assistant.Name)
	v.SetDefault("storage.file", cfg.Storage.File)
	v.SetDefault("storage.format", string(cfg.Storage.Format))
	v.SetDefault("events.enabled", cfg.Events.Enabled)
	v.SetDefault("events.file", cfg.Events.File)
	v.SetDefault("display.color", cfg.Display.Color)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
		// No config file: defaults plus any environment overrides.
	}

	cfg.Assistant.Name = v.GetString("assistant.name")
	cfg.Storage.File = v.GetString("storage.file")
	cfg.Storage.Format = models.StorageFormat(strings.ToLower(v.GetString("storage.format")))
	cfg.Events.Enabled = v.GetBool("events.enabled")
	cfg.Events.File = v.GetString("events.file")
	cfg.Display.Color = v.GetBool("display.color")

	return cfg, nil
}

var validFormats = map[models.StorageFormat]bool{
	models.FormatText: true,
	models.FormatYAML: true,
}

// ValidateConfig checks cfg for invalid values and returns one error listing
// every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if strings.TrimSpace(cfg.Assistant.Name) == "" {
		errs = append(errs, "assistant.name must not be empty")
	}
	if strings.TrimSpace(cfg.Storage.File) == "" {
		errs = append(errs, "storage.file must not be empty")
	}
	if !validFormats[cfg.Storage.Format] {
		errs = append(errs, fmt.Sprintf(
			"storage.format %q is invalid, must be one of: text, yaml",
			cfg.Storage.Format,
		))
	}
	if cfg.Events.Enabled && strings.TrimSpace(cfg.Events.File) == "" {
		errs = append(errs, "events.file must not be empty when events are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
