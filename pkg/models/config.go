package models

// AssistantConfig controls how the assistant presents itself.
type AssistantConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// StorageFormat selects how the task file is written.
type StorageFormat string

const (
	FormatText StorageFormat = "text"
	FormatYAML StorageFormat = "yaml"
)

// StorageConfig holds the task file settings.
type StorageConfig struct {
	File   string        `yaml:"file" mapstructure:"file"`
	Format StorageFormat `yaml:"format" mapstructure:"format"`
}

// EventsConfig controls the JSONL event log.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	File    string `yaml:"file" mapstructure:"file"`
}

// DisplayConfig controls reply rendering.
type DisplayConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

// Config holds the settings read from .primoconfig via Viper.
type Config struct {
	Assistant AssistantConfig `yaml:"assistant" mapstructure:"assistant"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Events    EventsConfig    `yaml:"events" mapstructure:"events"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
}
