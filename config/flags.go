package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds parsed command-line flags. Values only override the config
// when the flag was set explicitly.
type Flags struct {
	// Core
	Config  string
	Network string
	Testnet bool
	DataDir string

	// Mnemonic
	Words int

	// Derivation
	Profile string
	Account uint32
	Change  uint32
	Index   uint32
	Count   int

	// Cache
	Cache string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	sets []*pflag.FlagSet
}

// RegisterFlags registers the global flags on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	f.sets = append(f.sets, fs)

	// Core
	fs.StringVarP(&f.Config, "config", "c", "", "Config file path (default: <datadir>/keys.conf)")
	fs.StringVar(&f.Network, "network", "", "Network type: mainnet (default) or testnet")
	fs.BoolVar(&f.Testnet, "testnet", false, "Shorthand for --network=testnet")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory (default: ~/.klingnet-keys)")

	// Cache
	fs.StringVar(&f.Cache, "cache", "", "Derivation cache: none, memory or badger")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path (default: stderr only)")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")
	return f
}

// RegisterDeriveFlags registers the derivation target flags on fs.
func (f *Flags) RegisterDeriveFlags(fs *pflag.FlagSet) {
	f.sets = append(f.sets, fs)
	fs.StringVarP(&f.Profile, "profile", "p", "", "Chain profile (see 'profiles')")
	fs.Uint32Var(&f.Account, "account", 0, "BIP-44 account")
	fs.Uint32Var(&f.Change, "change", 0, "BIP-44 change (0 external, 1 internal)")
	fs.Uint32Var(&f.Index, "index", 0, "First address index")
	fs.IntVarP(&f.Count, "count", "n", 0, "Number of addresses to derive")
}

// RegisterMnemonicFlags registers phrase generation flags on fs.
func (f *Flags) RegisterMnemonicFlags(fs *pflag.FlagSet) {
	f.sets = append(f.sets, fs)
	fs.IntVarP(&f.Words, "words", "w", 0, "Number of words: 12, 15, 18, 21 or 24")
}

// changed reports whether the named flag was set on any registered set.
func (f *Flags) changed(name string) bool {
	for _, fs := range f.sets {
		if fl := fs.Lookup(name); fl != nil && fl.Changed {
			return true
		}
	}
	return false
}

// network returns the network requested on the command line, if any.
func (f *Flags) network() NetworkType {
	if f.changed("testnet") && f.Testnet {
		return Testnet
	}
	if f.changed("network") {
		return NetworkType(strings.ToLower(f.Network))
	}
	return ""
}

// ApplyFlags applies explicitly set command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}

	// Core
	if n := f.network(); n != "" {
		cfg.Network = n
	}
	if f.changed("datadir") {
		cfg.DataDir = f.DataDir
	}

	// Mnemonic
	if f.changed("words") {
		cfg.Mnemonic.Words = f.Words
	}

	// Derivation
	if f.changed("profile") {
		cfg.Derive.Profile = f.Profile
	}
	if f.changed("account") {
		cfg.Derive.Account = f.Account
	}
	if f.changed("change") {
		cfg.Derive.Change = f.Change
	}
	if f.changed("index") {
		cfg.Derive.Index = f.Index
	}
	if f.changed("count") {
		cfg.Derive.Count = f.Count
	}

	// Cache
	if f.changed("cache") {
		cfg.Cache.Backend = strings.ToLower(f.Cache)
	}

	// Logging
	if f.changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if f.changed("log-file") {
		cfg.Log.File = f.LogFile
	}
	if f.changed("log-json") {
		cfg.Log.JSON = f.LogJSON
	}
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Config file
// 3. Command-line flags
//
// A missing config file is not an error.
func Load(f *Flags) (*Config, error) {
	// Determine network first (needed for defaults)
	network := Mainnet
	if f != nil && f.network() == Testnet {
		network = Testnet
	}

	cfg := Default(network)
	if f != nil && f.changed("datadir") {
		cfg.DataDir = f.DataDir
	}

	configPath := cfg.ConfigFile()
	if f != nil && f.Config != "" {
		configPath = f.Config
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	// Apply flags (highest precedence)
	ApplyFlags(cfg, f)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
