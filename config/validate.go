package config

import (
	"fmt"
	"slices"

	"github.com/Klingon-tech/klingnet-keys/internal/keycache"
	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if !mnemonic.ValidWordCount(cfg.Mnemonic.Words) {
		return fmt.Errorf("mnemonic.words must be 12, 15, 18, 21 or 24")
	}

	if _, ok := wallet.ProfileByName(cfg.Derive.Profile); !ok {
		return fmt.Errorf("derive.profile %q is unknown (want one of %v)", cfg.Derive.Profile, wallet.ProfileNames())
	}
	if cfg.Derive.Count < 1 || cfg.Derive.Count > wallet.MaxAccounts {
		return fmt.Errorf("derive.count must be in range [1, %d]", wallet.MaxAccounts)
	}
	for _, f := range []struct {
		name string
		v    uint32
	}{
		{"derive.account", cfg.Derive.Account},
		{"derive.change", cfg.Derive.Change},
		{"derive.index", cfg.Derive.Index},
	} {
		if f.v >= hd.HardenedOffset {
			return fmt.Errorf("%s must be below %d", f.name, hd.HardenedOffset)
		}
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = keycache.BackendNone
	}
	if !slices.Contains(keycache.Backends, cfg.Cache.Backend) {
		return fmt.Errorf("cache.backend must be one of %v", keycache.Backends)
	}
	if !slices.Contains(log.Levels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of %v", log.Levels)
	}
	return nil
}
