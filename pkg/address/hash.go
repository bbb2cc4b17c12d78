package address

import (
	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

// hash160 validates pub and returns RIPEMD160(SHA256(pub)).
func (e *Encoder) hash160(pub []byte) ([]byte, error) {
	if _, err := e.curve.Compress(pub); err != nil {
		return nil, err
	}
	return crypto.Hash160(pub), nil
}

// keccakHash returns the last 20 bytes of Keccak256 over the 64-byte
// uncompressed point (the 0x04 prefix dropped).
func (e *Encoder) keccakHash(pub []byte) ([]byte, error) {
	full, err := e.curve.Uncompress(pub)
	if err != nil {
		return nil, err
	}
	h := crypto.Keccak256(full[1:])
	return h[len(h)-HashSize:], nil
}

// blake3Hash validates pub and returns BLAKE3(pub)[:20].
func (e *Encoder) blake3Hash(pub []byte) ([]byte, error) {
	if _, err := e.curve.Compress(pub); err != nil {
		return nil, err
	}
	h := crypto.Blake3(pub)
	out := make([]byte, HashSize)
	copy(out, h[:HashSize])
	return out, nil
}
