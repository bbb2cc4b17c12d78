// Package crypto provides the hash pipelines and the secp256k1 curve
// provider used by key derivation and address encoding.
package crypto

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by Bitcoin/Cosmos address format
	"golang.org/x/crypto/sha3"
)

// Hash160Size is the length of a RIPEMD160(SHA256(x)) digest.
const Hash160Size = ripemd160.Size

// SHA256 computes a single SHA-256 digest.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSHA256 computes SHA256(SHA256(data)).
// Used for Base58Check checksums.
func DoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// Keccak256 computes the legacy (pre-FIPS) Keccak-256 digest used by
// Ethereum.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Blake3 computes a BLAKE3-256 digest.
func Blake3(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// Checksum returns the first 4 bytes of DoubleSHA256(data).
func Checksum(data []byte) [4]byte {
	h := DoubleSHA256(data)
	var c [4]byte
	copy(c[:], h[:4])
	return c
}
