// Package config reads taskflow settings from the environment.
package config

import "github.com/ilyakaznacheev/cleanenv"

// Config holds the environment-driven settings. DataDir, when set, bypasses
// the project-scoped store path entirely.
type Config struct {
	DataDir  string `env:"TASKFLOW_DATA_DIR" env-default:""`
	LogLevel string `env:"TASKFLOW_LOG_LEVEL" env-default:"warn"`
}

// Read loads the config from the environment.
func Read() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
