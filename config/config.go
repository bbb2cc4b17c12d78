// Package config handles application configuration.
//
// Settings are resolved in order: built-in defaults, the .conf file, then
// command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds the key tool's runtime configuration.
type Config struct {
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	Mnemonic MnemonicConfig
	Derive   DeriveConfig
	Cache    CacheConfig
	Log      LogConfig
}

// MnemonicConfig holds phrase generation settings.
type MnemonicConfig struct {
	Words int `conf:"mnemonic.words"`
}

// DeriveConfig holds the default derivation target.
type DeriveConfig struct {
	Profile string `conf:"derive.profile"`
	Account uint32 `conf:"derive.account"`
	Change  uint32 `conf:"derive.change"`
	Index   uint32 `conf:"derive.index"`
	Count   int    `conf:"derive.count"`
}

// CacheConfig selects the derivation cache backend.
type CacheConfig struct {
	Backend string `conf:"cache.backend"` // none, memory or badger
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// HDNetwork returns the extended key versions for the configured network.
func (c *Config) HDNetwork() hd.Network {
	if c.Network == Testnet {
		return hd.Testnet
	}
	return hd.Mainnet
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-keys
//	macOS:   ~/Library/Application Support/KlingnetKeys
//	Windows: %APPDATA%\KlingnetKeys
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-keys"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetKeys")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "KlingnetKeys")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetKeys")
	default:
		return filepath.Join(home, ".klingnet-keys")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "keys.conf")
}
