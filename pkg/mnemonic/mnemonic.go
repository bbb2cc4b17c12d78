// Package mnemonic implements BIP-39 phrase generation, validation and
// seed derivation.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// DefaultWords is the phrase length produced by Generate when words is 0.
const DefaultWords = 24

// entropyBits maps a phrase length to its entropy size.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// ValidWordCount reports whether Generate accepts words.
func ValidWordCount(words int) bool {
	_, ok := entropyBits[words]
	return ok
}

// Generate creates a new BIP-39 phrase of the given word count
// (12, 15, 18, 21 or 24; 0 selects DefaultWords).
func Generate(words int) (string, error) {
	if words == 0 {
		words = DefaultWords
	}
	bits, ok := entropyBits[words]
	if !ok {
		return "", fmt.Errorf("unsupported word count %d (want 12, 15, 18, 21 or 24)", words)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate checks if a phrase is valid per BIP-39
// (correct word count, valid words, valid checksum).
func Validate(phrase string) bool {
	return bip39.IsMnemonicValid(Normalize(phrase))
}

// Normalize lowercases the phrase and collapses runs of whitespace into
// single spaces.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// WordCount returns the number of words in phrase.
func WordCount(phrase string) int {
	return len(strings.Fields(phrase))
}
