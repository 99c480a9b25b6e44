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

	"github.com/powerclass/marketctl/core/actionlog"
	"github.com/powerclass/marketctl/core/poll"
	"github.com/powerclass/marketctl/infra/rest"
)

type Config struct {
	API       rest.Config      `json:"api"`
	Poll      poll.Config      `json:"poll"`
	ActionLog actionlog.Config `json:"action_log"`
	Metrics   MetricsConfig    `json:"metrics"`
	Store     StoreConfig      `json:"store"`
}

// StoreConfig locates the persisted session snapshot.
type StoreConfig struct {
	// SnapshotPath is the file holding role, utility and selected session.
	SnapshotPath string `json:"snapshot_path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.SnapshotPath == "" {
		c.SnapshotPath = "marketctl-session.json"
	}
}

// MetricsConfig enables the optional observability sinks.
type MetricsConfig struct {
	Prometheus PrometheusConfig `json:"prometheus"`
	Influx     InfluxConfig     `json:"influx"`
}

type PrometheusConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

func (c *PrometheusConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":2112"
	}
}

type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

func (c InfluxConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" || c.Org == "" || c.Bucket == "" {
		return fmt.Errorf("influx sink requires url, org and bucket")
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("MARKETCTL_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "marketctl_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration usable without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	c.API.SetDefaults()
	c.Poll.SetDefaults()
	c.ActionLog.SetDefaults()
	c.Store.SetDefaults()
	c.Metrics.Prometheus.SetDefaults()
}

func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.ActionLog.Validate(); err != nil {
		return err
	}
	return c.Metrics.Influx.Validate()
}
