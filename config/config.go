package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/studiodesk/core/advisor"
	"github.com/kilianp07/studiodesk/core/metrics"
	"github.com/kilianp07/studiodesk/core/partition"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. STUDIODESK_ADVISOR__NEARBY_RADIUS_KM=25.
const EnvPrefix = "STUDIODESK_"

// Config is the application configuration, one section per component.
type Config struct {
	Partition partition.Config `json:"partition"`
	Advisor   advisor.Config   `json:"advisor"`
	Logging   LoggingConfig    `json:"logging"`
	Metrics   metrics.Config   `json:"metrics"`
}

// Load reads the optional configuration file at path, applies environment
// overrides and defaults, then validates the result. An empty path uses
// environment and defaults only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Partition.SetDefaults()
	c.Advisor.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Partition.Validate(); err != nil {
		return fmt.Errorf("partition: %w", err)
	}
	if err := c.Advisor.Validate(); err != nil {
		return fmt.Errorf("advisor: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics: sink %d has no type", i)
		}
	}
	return nil
}
