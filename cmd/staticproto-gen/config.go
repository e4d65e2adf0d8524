package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config mirrors the YAML capacity file:
//
//	default_capacity: 16
//	capacities:
//	  Sample.tags: 8
//	  Sample.tags.elem: 32
//
// Keys under capacities use the flattened Go message name, the proto field
// name and an optional .elem suffix for the per-element bound of repeated
// string or bytes fields.
type Config struct {
	DefaultCapacity int            `mapstructure:"default_capacity"`
	Capacities      map[string]int `mapstructure:"capacities"`
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return &cfg, nil
}
