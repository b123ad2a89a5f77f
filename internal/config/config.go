// Package config loads the YAML server configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Position mirrors the wire Position type for configuration purposes
// (spawn coordinates are specified in blocks, not fixed-point units).
type Position struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Rotation mirrors the wire Rotation type, in radians.
type Rotation struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

// Config is the server's complete runtime configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	WorldPath  string `yaml:"world_path"`

	WorldX uint32 `yaml:"world_x"`
	WorldY uint32 `yaml:"world_y"`
	WorldZ uint32 `yaml:"world_z"`

	ServerName string `yaml:"server_name"`
	MOTD       string `yaml:"motd"`

	SaveIntervalSeconds int `yaml:"save_interval_seconds"`

	Spawn    Position `yaml:"spawn"`
	SpawnRot Rotation `yaml:"spawn_rotation"`

	LogLevel string `yaml:"log_level"`
}

// SaveInterval returns SaveIntervalSeconds as a time.Duration.
func (c *Config) SaveInterval() time.Duration {
	return time.Duration(c.SaveIntervalSeconds) * time.Second
}

// Default returns the server's built-in defaults, used when no config
// file is present and as the base that a loaded file's fields overlay.
func Default() *Config {
	return &Config{
		ListenAddr:          "127.0.0.1:8080",
		WorldPath:           "./level.bin",
		WorldX:              128,
		WorldY:              64,
		WorldZ:              128,
		ServerName:          "vintage",
		MOTD:                "Vintage server",
		SaveIntervalSeconds: 60,
		Spawn:               Position{X: 64, Y: 33, Z: 64},
		LogLevel:            "info",
	}
}

// Load reads and parses a YAML config file, starting from Default() so
// any field the file omits keeps its built-in value.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
