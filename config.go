package norm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one database: which backend to render for, its
// connection parameters and how loudly to log.
type Config struct {
	Name     string   `yaml:"name"`
	Engine   string   `yaml:"engine"`
	Params   Params   `yaml:"params"`
	LogLevel LogLevel `yaml:"log_level"`
}

// ParseConfig reads a Config from YAML.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("norm: parse config: %w", err)
	}
	if cfg.Engine == "" {
		return Config{}, &ConfigurationError{Engine: cfg.Name, Reason: "engine is mandatory"}
	}
	return cfg, nil
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("norm: read config: %w", err)
	}
	return ParseConfig(data)
}

// Open builds the engine described by cfg and returns a Database for it.
// No connection is made until Connect is called.
func Open(cfg Config) (*Database, error) {
	engine, err := NewEngine(cfg.Engine, cfg.Params)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	db := New(engine).WithLogger(logger)
	if cfg.Name != "" {
		db.WithName(cfg.Name)
	}
	return db, nil
}
