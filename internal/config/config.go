package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Jayarmananan1994/notifyme/pkg/config"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

type AppConfig struct {
	Environment string `yaml:"environment"`
}

// HealthConfig drives the /health dependency probes
type HealthConfig struct {
	GmailProbeURL    string        `yaml:"gmail_probe_url"`
	WhatsAppProbeURL string        `yaml:"whatsapp_probe_url"`
	ProbeTimeout     time.Duration `yaml:"probe_timeout"`
}

// RateLimitConfig is the per-user token bucket for authenticated routes
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type WorkerConfig struct {
	Queue          string        `yaml:"queue"`
	DedupTTL       time.Duration `yaml:"dedup_ttl"`
	RetryTTL       time.Duration `yaml:"retry_ttl"`
	MaxRetries     int64         `yaml:"max_retries"`
	OutboxInterval time.Duration `yaml:"outbox_interval"`
}

type Config struct {
	App       AppConfig           `yaml:"app"`
	DB        config.DBConfig     `yaml:"db"`
	Redis     config.RedisConfig  `yaml:"redis"`
	MQ        config.MQConfig     `yaml:"mq"`
	JWT       config.JWTConfig    `yaml:"jwt"`
	Server    config.ServerConfig `yaml:"server"`
	Health    HealthConfig        `yaml:"health"`
	RateLimit RateLimitConfig     `yaml:"rate_limit"`
	Worker    WorkerConfig        `yaml:"worker"`
}

// Load reads config/<CONFIG_ENV>.yaml over config/base.yaml and exits on failure.
func Load() *Config {
	cfg, err := LoadFrom(config.GetConfigEnv(), config.GetEnv("CONFIG_DIR", "config"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom loads, applies environment overrides and defaults, then validates.
func LoadFrom(env, dir string) (*Config, error) {
	cfgMap, err := config.LoadConfig(env, dir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := config.Decode(cfgMap, &cfg); err != nil {
		return nil, err
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	overrideFromEnv(&cfg)

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.App.Environment = env
	}
	if url := os.Getenv("GMAIL_PROBE_URL"); url != "" {
		cfg.Health.GmailProbeURL = url
	}
	if url := os.Getenv("WHATSAPP_PROBE_URL"); url != "" {
		cfg.Health.WhatsAppProbeURL = url
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			cfg.RateLimit.RequestsPerSecond = v
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Environment == "" {
		cfg.App.Environment = constants.EnvDevelopment
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Health.WhatsAppProbeURL == "" {
		cfg.Health.WhatsAppProbeURL = constants.WhatsAppBaseURL
	}
	if cfg.Health.ProbeTimeout == 0 {
		cfg.Health.ProbeTimeout = 2 * time.Second
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Worker.Queue == "" {
		cfg.Worker.Queue = "email.received.rules.q"
	}
	if cfg.Worker.DedupTTL == 0 {
		cfg.Worker.DedupTTL = time.Hour
	}
	if cfg.Worker.RetryTTL == 0 {
		cfg.Worker.RetryTTL = time.Hour
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 5
	}
	if cfg.Worker.OutboxInterval == 0 {
		cfg.Worker.OutboxInterval = time.Second
	}
}

// Validate rejects configurations the binaries cannot run with
func (c *Config) Validate() error {
	if !constants.IsKnownEnvironment(c.App.Environment) {
		return fmt.Errorf("unknown app.environment %q", c.App.Environment)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	return nil
}
