package hd

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// Serialization layout.
const (
	SerializedSize  = 78
	ChainCodeSize   = 32
	FingerprintSize = 4
	MaxDepth        = 255

	checksumSize = 4
	keyDataSize  = 33
)

// ExtendedKey is a BIP-32 node: a private or public key plus the chain
// code and position needed to derive its children.
//
// An ExtendedKey is immutable apart from Zero.
type ExtendedKey struct {
	eng        *Engine
	network    Network
	depth      uint8
	parentFP   [FingerprintSize]byte
	childIndex uint32
	chainCode  [ChainCodeSize]byte
	priv       []byte // nil for public keys
	pub        []byte // compressed, always set
}

// IsPrivate reports whether the key holds private key material.
func (k *ExtendedKey) IsPrivate() bool { return k.priv != nil }

// Depth returns the number of derivation steps from the master.
func (k *ExtendedKey) Depth() uint8 { return k.depth }

// ParentFingerprint returns the first 4 bytes of Hash160 of the parent
// public key, zero for the master.
func (k *ExtendedKey) ParentFingerprint() [FingerprintSize]byte { return k.parentFP }

// ChildIndex returns the 32-bit index this key was derived at.
func (k *ExtendedKey) ChildIndex() uint32 { return k.childIndex }

// ChainCode returns the 32-byte chain code.
func (k *ExtendedKey) ChainCode() [ChainCodeSize]byte { return k.chainCode }

// Network returns the network whose version bytes the key serializes with.
func (k *ExtendedKey) Network() Network { return k.network }

// PublicKey returns a copy of the 33-byte compressed public key.
func (k *ExtendedKey) PublicKey() []byte { return bytes.Clone(k.pub) }

// PrivateKey returns a copy of the 32-byte private key, or nil for a
// public key.
func (k *ExtendedKey) PrivateKey() []byte { return bytes.Clone(k.priv) }

// Fingerprint returns the key's own fingerprint, as used by its children.
func (k *ExtendedKey) Fingerprint() [FingerprintSize]byte {
	var fp [FingerprintSize]byte
	copy(fp[:], crypto.Hash160(k.pub))
	return fp
}

// Version returns the 4 version bytes for this key's network and kind.
func (k *ExtendedKey) Version() [4]byte {
	if k.IsPrivate() {
		return k.network.PrivateVersion
	}
	return k.network.PublicVersion
}

// Serialize returns the 78-byte BIP-32 encoding.
func (k *ExtendedKey) Serialize() []byte {
	buf := make([]byte, 0, SerializedSize)
	version := k.Version()
	buf = append(buf, version[:]...)
	buf = append(buf, k.depth)
	buf = append(buf, k.parentFP[:]...)
	buf = binary.BigEndian.AppendUint32(buf, k.childIndex)
	buf = append(buf, k.chainCode[:]...)
	if k.IsPrivate() {
		buf = append(buf, 0x00)
		buf = append(buf, k.priv...)
	} else {
		buf = append(buf, k.pub...)
	}
	return buf
}

// String returns the Base58Check text form (xprv.../xpub...).
func (k *ExtendedKey) String() string {
	raw := k.Serialize()
	sum := crypto.Checksum(raw)
	return base58.Encode(append(raw, sum[:]...))
}

// Neuter returns the public counterpart of k. A public key is returned as is.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	if !k.IsPrivate() {
		return k
	}
	return &ExtendedKey{
		eng:        k.eng,
		network:    k.network,
		depth:      k.depth,
		parentFP:   k.parentFP,
		childIndex: k.childIndex,
		chainCode:  k.chainCode,
		pub:        bytes.Clone(k.pub),
	}
}

// Child derives the child at the 32-bit index i. Public keys can only
// derive non-hardened children.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	return k.eng.child(k, i)
}

// DerivePath walks path relative to k.
func (k *ExtendedKey) DerivePath(path DerivationPath) (*ExtendedKey, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	cur := k
	for _, seg := range path {
		next, err := cur.Child(seg.ChildIndex())
		if err != nil {
			if cur != k {
				cur.Zero()
			}
			return nil, err
		}
		if cur != k {
			cur.Zero()
		}
		cur = next
	}
	return cur, nil
}

// Zero wipes the private key and chain code.
func (k *ExtendedKey) Zero() {
	crypto.Zero(k.priv)
	crypto.Zero(k.chainCode[:])
}

// ParseExtendedKey decodes an xprv/xpub/tprv/tpub string using the
// default engine.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	return defaultEngine.parse(s, knownNetworks)
}

// ParseExtendedKey decodes a Base58Check extended key serialized for the
// engine's network.
func (e *Engine) ParseExtendedKey(s string) (*ExtendedKey, error) {
	return e.parse(s, []Network{e.network})
}

func (e *Engine) parse(s string, networks []Network) (*ExtendedKey, error) {
	const op = "parse extended key"

	decoded := base58.Decode(s)
	if len(decoded) != SerializedSize+checksumSize {
		return nil, keyerr.Newf(keyerr.KindAddress, op, "invalid encoding or length (%d bytes)", len(decoded))
	}
	raw, sum := decoded[:SerializedSize], decoded[SerializedSize:]
	want := crypto.Checksum(raw)
	if subtle.ConstantTimeCompare(sum, want[:]) != 1 {
		return nil, keyerr.New(keyerr.KindAddress, op, "checksum mismatch")
	}
	return e.decode(raw, networks)
}

// decode rebuilds a key from its 78-byte serialization.
func (e *Engine) decode(raw []byte, networks []Network) (*ExtendedKey, error) {
	const op = "decode extended key"

	if len(raw) != SerializedSize {
		return nil, keyerr.Newf(keyerr.KindAddress, op, "length %d, want %d", len(raw), SerializedSize)
	}

	var version [4]byte
	copy(version[:], raw[0:4])
	var (
		network Network
		private bool
		found   bool
	)
	for _, n := range networks {
		if private, found = n.matchVersion(version); found {
			network = n
			break
		}
	}
	if !found {
		return nil, keyerr.Newf(keyerr.KindAddress, op, "unknown version %x", version)
	}

	k := &ExtendedKey{
		eng:        e,
		network:    network,
		depth:      raw[4],
		childIndex: binary.BigEndian.Uint32(raw[9:13]),
	}
	copy(k.parentFP[:], raw[5:9])
	copy(k.chainCode[:], raw[13:45])

	if k.depth == 0 && (k.parentFP != [FingerprintSize]byte{} || k.childIndex != 0) {
		return nil, keyerr.New(keyerr.KindAddress, op, "master key with nonzero parent fingerprint or index")
	}

	data := raw[45:]
	if private {
		if data[0] != 0x00 {
			return nil, keyerr.Newf(keyerr.KindAddress, op, "private key data prefix %#x, want 0x00", data[0])
		}
		priv := bytes.Clone(data[1:])
		pub, err := e.curve.PublicKey(priv)
		if err != nil {
			return nil, err
		}
		k.priv, k.pub = priv, pub
		return k, nil
	}

	pub, err := e.curve.Compress(data)
	if err != nil {
		return nil, err
	}
	k.pub = pub
	return k, nil
}
