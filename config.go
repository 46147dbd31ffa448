package genimage

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config holds the run parameters read from an INI file.
type Config struct {
	Evolution EvolutionConfig
	Output    OutputConfig
}

// EvolutionConfig holds the parameters of the search itself.
type EvolutionConfig struct {
	Specimens   int   `ini:"specimens"`
	Margin      int   `ini:"margin"`
	MaxRetries  int   `ini:"max_retries"`
	Workers     int   `ini:"workers"`     // 0 means GOMAXPROCS
	Seed        int64 `ini:"seed"`        // 0 means time based
	Generations int   `ini:"generations"` // 0 means run until interrupted
	Grayscale   bool  `ini:"grayscale"`
}

// OutputConfig holds the destinations of the produced files.
type OutputConfig struct {
	SVG             string `ini:"svg"`
	PNG             string `ini:"png"`
	SnapshotEvery   int    `ini:"snapshot_every"`
	Checkpoint      string `ini:"checkpoint"`
	CheckpointEvery int    `ini:"checkpoint_every"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Evolution: EvolutionConfig{
			Specimens:  DefaultSpecimens,
			Margin:     DefaultMargin,
			MaxRetries: DefaultMaxRetries,
			Workers:    1,
		},
		Output: OutputConfig{
			SVG:             "output.svg",
			SnapshotEvery:   100,
			CheckpointEvery: 500,
		},
	}
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:         true, // comments are stripped by cleanIniString
	UnescapeValueCommentSymbols: true,
}

// LoadConfig loads the configuration from an INI file. Missing keys keep
// their default value.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(loadOptions, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig parses the configuration from INI data.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := DefaultConfig()

	if err := cfg.Section("evolution").StrictMapTo(&config.Evolution); err != nil {
		return nil, fmt.Errorf("failed to map [evolution] section: %w", err)
	}
	if err := cfg.Section("output").StrictMapTo(&config.Output); err != nil {
		return nil, fmt.Errorf("failed to map [output] section: %w", err)
	}

	config.Output.SVG = cleanIniString(config.Output.SVG)
	config.Output.PNG = cleanIniString(config.Output.PNG)
	config.Output.Checkpoint = cleanIniString(config.Output.Checkpoint)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Evolution.Specimens <= 0 {
		return fmt.Errorf("config error: specimens must be positive")
	}
	if c.Evolution.Margin <= 0 {
		return fmt.Errorf("config error: margin must be positive")
	}
	if c.Evolution.MaxRetries <= 0 {
		return fmt.Errorf("config error: max_retries must be positive")
	}
	if c.Evolution.Workers < 0 {
		return fmt.Errorf("config error: workers cannot be negative")
	}
	if c.Evolution.Generations < 0 {
		return fmt.Errorf("config error: generations cannot be negative")
	}
	if c.Output.SnapshotEvery < 0 {
		return fmt.Errorf("config error: snapshot_every cannot be negative")
	}
	if c.Output.CheckpointEvery < 0 {
		return fmt.Errorf("config error: checkpoint_every cannot be negative")
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
