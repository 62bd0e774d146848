package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Catalog struct {
		SeedURL      string `yaml:"seed_url"`
		ImageBaseURL string `yaml:"image_base_url"`
		SeedOnStart  bool   `yaml:"seed_on_start"`
		SeedLimit    int    `yaml:"seed_limit"`
		CacheTTL     string `yaml:"cache_ttl"`
		DefaultLimit int    `yaml:"default_limit"`
		MaxLimit     int    `yaml:"max_limit"`
	} `yaml:"catalog"`
	Scores struct {
		LeaderboardSize int `yaml:"leaderboard_size"`
	} `yaml:"scores"`
	Game struct {
		BatchSize  int    `yaml:"batch_size"`
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"game"`
	Kafka struct {
		Enabled bool     `yaml:"enabled"`
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Server.ReadTimeout = "15s"
	cfg.Server.WriteTimeout = "15s"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Catalog.SeedURL = "https://raw.githubusercontent.com/filippofilip95/car-logos-dataset/master/data.json"
	cfg.Catalog.ImageBaseURL = "https://raw.githubusercontent.com/filippofilip95/car-logos-dataset/master/logos/optimized"
	cfg.Catalog.SeedOnStart = true
	cfg.Catalog.SeedLimit = 150
	cfg.Catalog.CacheTTL = "10m"
	cfg.Catalog.DefaultLimit = 10
	cfg.Catalog.MaxLimit = 150
	cfg.Scores.LeaderboardSize = 10
	cfg.Game.BatchSize = 10
	cfg.Game.SessionTTL = "1h"
	cfg.Kafka.Topic = "logo-guess.scores"
	return cfg
}

// Load reads YAML config from path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// IntOr returns v, or fallback when v is not positive.
func IntOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
