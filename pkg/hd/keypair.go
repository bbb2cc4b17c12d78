package hd

import (
	"bytes"
	"encoding/hex"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

// PrivateKey is a 32-byte secp256k1 scalar in [1, n-1].
type PrivateKey [crypto.PrivateKeySize]byte

// Bytes returns a copy of the scalar.
func (k PrivateKey) Bytes() []byte { return bytes.Clone(k[:]) }

// Hex returns the scalar as lowercase hex. This is the only cleartext form.
func (k PrivateKey) Hex() string { return hex.EncodeToString(k[:]) }

// String is redacted so keys never end up in logs by accident.
func (k PrivateKey) String() string { return "PrivateKey(redacted)" }

// Zero wipes the key.
func (k *PrivateKey) Zero() { crypto.Zero(k[:]) }

// PublicKey is a 33-byte compressed secp256k1 point.
type PublicKey [crypto.PublicKeySize]byte

// Bytes returns a copy of the compressed point.
func (k PublicKey) Bytes() []byte { return bytes.Clone(k[:]) }

// Hex returns the compressed point as lowercase hex.
func (k PublicKey) Hex() string { return hex.EncodeToString(k[:]) }

func (k PublicKey) String() string { return k.Hex() }

// Uncompressed returns the 65-byte 0x04 || x || y form.
func (k PublicKey) Uncompressed(c crypto.Curve) ([]byte, error) {
	return c.Uncompress(k[:])
}

// KeyPair is the result of deriving a path from a seed. It keeps the seed
// so further paths can be derived from the master.
type KeyPair struct {
	eng  *Engine
	seed []byte
	path DerivationPath
	priv PrivateKey
	pub  PublicKey
	xprv *ExtendedKey
	xpub *ExtendedKey
}

// Seed returns a copy of the seed the pair was built from.
func (kp *KeyPair) Seed() []byte { return bytes.Clone(kp.seed) }

// Path returns the absolute path of this pair. Empty for the master.
func (kp *KeyPair) Path() DerivationPath { return kp.path.Append() }

// PrivateKey returns the private scalar.
func (kp *KeyPair) PrivateKey() PrivateKey { return kp.priv }

// PublicKey returns the compressed public key.
func (kp *KeyPair) PublicKey() PublicKey { return kp.pub }

// ExtendedPrivateKey returns the extended private key.
func (kp *KeyPair) ExtendedPrivateKey() *ExtendedKey { return kp.xprv }

// ExtendedPublicKey returns the extended public key.
func (kp *KeyPair) ExtendedPublicKey() *ExtendedKey { return kp.xpub }

// Derive parses path and derives it from the master. The path is absolute:
// the current pair's own path is ignored.
func (kp *KeyPair) Derive(path string) (*KeyPair, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return kp.DerivePath(p)
}

// DerivePath derives the absolute path p from the master.
func (kp *KeyPair) DerivePath(p DerivationPath) (*KeyPair, error) {
	return kp.eng.keyPair(kp.seed, p)
}

// Zero wipes the seed and private material. The pair must not be used
// afterwards.
func (kp *KeyPair) Zero() {
	crypto.Zero(kp.seed)
	kp.priv.Zero()
	kp.xprv.Zero()
	crypto.Zero(kp.xpub.chainCode[:])
}
