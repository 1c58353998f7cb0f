package main

import (
	"fmt"

	"gigboard-notify/internal/pkg/config"
)

// Flags holds the global options shared by every command.
type Flags struct {
	EnvFile  string
	LogLevel string
}

func (f *Flags) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
