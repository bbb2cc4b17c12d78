package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads configuration from a .conf file. A missing file yields an
// empty map.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse key = value
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(value)
	case "datadir":
		cfg.DataDir = value

	// Mnemonic
	case "mnemonic.words":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Mnemonic.Words = n

	// Derivation
	case "derive.profile", "profile":
		cfg.Derive.Profile = value
	case "derive.account":
		n, err := parseUint32(value)
		if err != nil {
			return err
		}
		cfg.Derive.Account = n
	case "derive.change":
		n, err := parseUint32(value)
		if err != nil {
			return err
		}
		cfg.Derive.Change = n
	case "derive.index":
		n, err := parseUint32(value)
		if err != nil {
			return err
		}
		cfg.Derive.Index = n
	case "derive.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Derive.Count = n

	// Cache
	case "cache.backend", "cache":
		cfg.Cache.Backend = strings.ToLower(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// WriteDefaultConfig writes a default configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	content := `# Klingnet Keys Configuration
#
# Mnemonics, passphrases and private keys are never read from or written
# to this file.

# Network: mainnet (xprv/xpub) or testnet (tprv/tpub)
network = ` + string(network) + `

# Data directory (default: ~/.klingnet-keys)
# datadir = ~/.klingnet-keys

# ============================================================================
# Mnemonic
# ============================================================================

# Words in generated phrases: 12, 15, 18, 21 or 24
mnemonic.words = 24

# ============================================================================
# Derivation
# ============================================================================

# Profile: bitcoin, ethereum, cosmos, osmosis, juno, stargaze, evmos, canto,
# klingnet
derive.profile = ethereum
derive.account = 0
derive.change = 0
derive.index = 0
derive.count = 1

# ============================================================================
# Cache
# ============================================================================

# Derivation cache: none, memory or badger (in-memory, never on disk)
cache.backend = none

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}
