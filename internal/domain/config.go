package domain

import "fmt"

// Defaults for the engine configuration surface.
const (
	DefaultMaxFiles     = 50
	DefaultMaxFileBytes = 128 * 1024
	DefaultMaxIssues    = 10
	DefaultWorkers      = 4
	DefaultAIModel      = "claude-3-5-haiku-20241022"
	DefaultAIMaxBytes   = 8 * 1024
	DefaultAIMaxFiles   = 10
)

// Config is the engine configuration surface. Credentials are not part of
// it; they live in the environment and are read by the collaborator layer.
type Config struct {
	MaxFiles     int    `yaml:"max_files"`
	MaxFileBytes int64  `yaml:"max_file_bytes"`
	MaxIssues    int    `yaml:"max_issues"`
	Workers      int    `yaml:"workers"`
	AIModel      string `yaml:"ai_model"`
	AIMaxBytes   int    `yaml:"ai_max_bytes"`
	AIMaxFiles   int    `yaml:"ai_max_files"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		MaxFiles:     DefaultMaxFiles,
		MaxFileBytes: DefaultMaxFileBytes,
		MaxIssues:    DefaultMaxIssues,
		Workers:      DefaultWorkers,
		AIModel:      DefaultAIModel,
		AIMaxBytes:   DefaultAIMaxBytes,
		AIMaxFiles:   DefaultAIMaxFiles,
	}
}

// Validate catches nonsensical values before a scan starts.
func (c Config) Validate() error {
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files must not be negative, got %d", c.MaxFiles)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must not be negative, got %d", c.MaxFileBytes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Normalize fills zero values with defaults so a partially specified
// config file behaves predictably.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.MaxFiles == 0 {
		c.MaxFiles = d.MaxFiles
	}
	if c.MaxFileBytes == 0 {
		c.MaxFileBytes = d.MaxFileBytes
	}
	if c.MaxIssues == 0 {
		c.MaxIssues = d.MaxIssues
	}
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.AIModel == "" {
		c.AIModel = d.AIModel
	}
	if c.AIMaxBytes == 0 {
		c.AIMaxBytes = d.AIMaxBytes
	}
	if c.AIMaxFiles == 0 {
		c.AIMaxFiles = d.AIMaxFiles
	}
	return c
}
