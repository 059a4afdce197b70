// Package config loads the server configuration from a YAML file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
	Events Events `yaml:"events"`
	Admin  Admin  `yaml:"admin"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Auth struct {
	SessionDuration string `yaml:"session_duration"`
}

type Events struct {
	BufferSize int `yaml:"buffer_size"`
}

type Admin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// GetSessionDuration parses the configured session TTL, falling back to 24h.
func (a *Auth) GetSessionDuration() time.Duration {
	d, err := time.ParseDuration(a.SessionDuration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load reads and parses the config file at path. An empty path yields the
// defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		setDefaults(&cfg)
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 6280
	}
	if cfg.Auth.SessionDuration == "" {
		cfg.Auth.SessionDuration = "24h"
	}
	if cfg.Events.BufferSize == 0 {
		cfg.Events.BufferSize = 256
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
	}
}
