package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	Data   Data   `yaml:"data" json:"data"`
	Engine Engine `yaml:"engine" json:"engine"`
	Notify Notify `yaml:"notify" json:"notify"`
	Push   Push   `yaml:"push" json:"push"`
	Digest Digest `yaml:"digest" json:"digest"`
}

type Server struct {
	Port int `yaml:"port" json:"port"`
}

type Data struct {
	Dir string `yaml:"dir" json:"dir"`
	// Storage selects the task store backend: "file" or "sqlite".
	Storage string `yaml:"storage" json:"storage"`
}

type Engine struct {
	TickSeconds int                `yaml:"tick_seconds" json:"tick_seconds"`
	Defaults    EscalationDefaults `yaml:"defaults" json:"defaults"`
}

// EscalationDefaults apply to tasks created without an explicit policy.
type EscalationDefaults struct {
	IntervalMinutes int `yaml:"interval_minutes" json:"interval_minutes"`
	MaxSteps        int `yaml:"max_steps" json:"max_steps"`
}

type Notify struct {
	Desktop bool   `yaml:"desktop" json:"desktop"`
	Speech  Speech `yaml:"speech" json:"speech"`
}

type Speech struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Command is the synthesizer binary, e.g. "espeak".
	Command string `yaml:"command" json:"command"`
}

type Push struct {
	VAPIDPublic  string `yaml:"vapid_public" json:"-"`
	VAPIDPrivate string `yaml:"vapid_private" json:"-"`
	Contact      string `yaml:"contact" json:"contact"`
}

type Digest struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Schedule is a cron expression, e.g. "*/5 * * * *".
	Schedule string `yaml:"schedule" json:"schedule"`
}

func Default() *Config {
	return &Config{
		Server: Server{Port: 8080},
		Data:   Data{Dir: "data", Storage: "file"},
		Engine: Engine{
			TickSeconds: 60,
			Defaults:    EscalationDefaults{IntervalMinutes: 5, MaxSteps: 3},
		},
		Notify: Notify{
			Desktop: true,
			Speech:  Speech{Enabled: true, Command: "espeak"},
		},
		Push:   Push{Contact: "mailto:you@example.com"},
		Digest: Digest{Enabled: false, Schedule: "*/5 * * * *"},
	}
}

// Load reads the YAML config at path over the defaults, then applies env
// overrides. A missing file is fine; env alone can configure everything.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: bad server port %d", c.Server.Port)
	}
	if c.Engine.TickSeconds <= 0 {
		return fmt.Errorf("config: tick_seconds must be positive")
	}
	if c.Engine.Defaults.IntervalMinutes <= 0 || c.Engine.Defaults.MaxSteps <= 0 {
		return fmt.Errorf("config: escalation defaults must be positive")
	}
	switch c.Data.Storage {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Data.Storage)
	}
	return nil
}
