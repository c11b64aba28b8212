package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// EngineConfig is the decision engine's explicit configuration surface. The
// engine reads nothing from the environment itself; these values are passed
// in at construction.
type EngineConfig struct {
	ScaleMax             int             `yaml:"scale_max"`
	ConsistencyThreshold float64         `yaml:"consistency_threshold"`
	RiskBands            RiskBandsConfig `yaml:"risk_bands"`
}

type RiskBandsConfig struct {
	T1 float64 `yaml:"t1"`
	T2 float64 `yaml:"t2"`
	T3 float64 `yaml:"t3"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Engine: EngineConfig{
			ScaleMax:             9,
			ConsistencyThreshold: 0.1,
			RiskBands: RiskBandsConfig{
				T1: 3,
				T2: 9,
				T3: 18,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("THEMIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("THEMIS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("THEMIS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("THEMIS_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("THEMIS_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("THEMIS_SCALE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.ScaleMax = n
		}
	}
	if v := os.Getenv("THEMIS_CONSISTENCY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.ConsistencyThreshold = f
		}
	}
	if v := os.Getenv("THEMIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
