package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine struct {
		Season       int `yaml:"season"`
		LeaseTTLSecs int `yaml:"lease_ttl_seconds"`
	} `yaml:"engine"`
	Gateway struct {
		Addr string `yaml:"addr"`
	} `yaml:"gateway"`
	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
	Tracker struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"tracker"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Engine.Season == 0 {
		return nil, fmt.Errorf("engine.season is required")
	}
	if config.Gateway.Addr == "" {
		config.Gateway.Addr = ":8090"
	}
	if config.NATS.SubjectPrefix == "" {
		config.NATS.SubjectPrefix = "draft.events"
	}
	return &config, nil
}

func (c *Config) leaseTTL() time.Duration {
	if c.Engine.LeaseTTLSecs <= 0 {
		return 0 // coordinator falls back to its default
	}
	return time.Duration(c.Engine.LeaseTTLSecs) * time.Second
}
