package config

import (
	"fmt"
	"os"
)

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. It returns the config file path and
// whether it was written.
func EnsureDataDirs(cfg *Config) (string, bool, error) {
	for _, dir := range []string{cfg.DataDir, cfg.LogsDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		return configPath, false, nil
	}
	if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
		return "", false, fmt.Errorf("writing config file: %w", err)
	}
	return configPath, true, nil
}
