package mnemonic

import (
	"errors"

	"github.com/tyler-smith/go-bip39"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

var errInvalidPhrase = errors.New("invalid mnemonic")

// BIP39 turns a phrase and optional passphrase into a seed using
// PBKDF2-SHA512 (2048 rounds) as specified in BIP-39.
type BIP39 struct{}

// Seed validates the phrase and derives the 64-byte seed. Unknown words
// and checksum failures return a keyerr.KindMnemonic error.
func (BIP39) Seed(phrase, passphrase string) ([]byte, error) {
	return SeedFromMnemonic(phrase, passphrase)
}

// SeedFromMnemonic derives a 512-bit seed from a phrase and optional passphrase.
func SeedFromMnemonic(phrase, passphrase string) ([]byte, error) {
	phrase = Normalize(phrase)
	if !bip39.IsMnemonicValid(phrase) {
		return nil, keyerr.Mnemonic("seed", errInvalidPhrase)
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, passphrase)
	if err != nil {
		return nil, keyerr.Mnemonic("seed", err)
	}
	return seed, nil
}
