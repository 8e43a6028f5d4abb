package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays fields tagged with `env` from the environment. Unset
// variables leave the current values alone.
func parseEnv(cfg *Config, environ map[string]string) error {
	return env.ParseWithOptions(cfg, env.Options{Environment: environ})
}
