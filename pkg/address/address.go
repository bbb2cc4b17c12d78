// Package address renders public keys as chain-specific addresses.
//
// Each supported chain is a pair of a hash pipeline and a text encoding,
// selected by the Chain value passed to New.
package address

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// HashSize is the length of the 20-byte account hash used by every family.
const HashSize = 20

// Chain selects an address family.
type Chain uint8

const (
	// Bitcoin: Base58 of 0x00 || RIPEMD160(SHA256(pub)) || checksum.
	Bitcoin Chain = iota + 1
	// Ethereum: EIP-55 hex of Keccak256(uncompressed pub)[12:].
	Ethereum
	// Cosmos: Bech32 of RIPEMD160(SHA256(pub)).
	Cosmos
	// Evmos: Bech32 of Keccak256(uncompressed pub)[12:].
	Evmos
	// Klingnet: Bech32 of BLAKE3(pub)[:20].
	Klingnet
)

var chainNames = map[Chain]string{
	Bitcoin:  "bitcoin",
	Ethereum: "ethereum",
	Cosmos:   "cosmos",
	Evmos:    "evmos",
	Klingnet: "klingnet",
}

func (c Chain) String() string {
	if name, ok := chainNames[c]; ok {
		return name
	}
	return fmt.Sprintf("chain(%d)", uint8(c))
}

// ParseChain maps a chain name (case-insensitive) to its Chain.
func ParseChain(name string) (Chain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range chainNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown chain %q", name)
}

// UsesBech32 reports whether the chain renders with a human-readable prefix.
func (c Chain) UsesBech32() bool {
	return c == Cosmos || c == Evmos || c == Klingnet
}

// DefaultHRP returns the prefix New uses when none is given.
func (c Chain) DefaultHRP() string {
	switch c {
	case Cosmos:
		return "cosmos"
	case Evmos:
		return "evmos"
	case Klingnet:
		return "kgx"
	default:
		return ""
	}
}

// Address is an encoded address.
type Address struct {
	chain   Chain
	hrp     string
	payload []byte
	text    string
}

// Chain returns the family the address was rendered for.
func (a Address) Chain() Chain { return a.chain }

// HRP returns the Bech32 prefix, empty for Bitcoin and Ethereum.
func (a Address) HRP() string { return a.hrp }

// Bytes returns a copy of the raw payload: 25 bytes for Bitcoin
// (version, hash, checksum), 20 bytes otherwise.
func (a Address) Bytes() []byte { return bytes.Clone(a.payload) }

// Hash returns the 20-byte account hash.
func (a Address) Hash() []byte {
	if a.chain == Bitcoin && len(a.payload) == bitcoinPayloadSize {
		return bytes.Clone(a.payload[1 : 1+HashSize])
	}
	return bytes.Clone(a.payload)
}

// String returns the canonical text form.
func (a Address) String() string { return a.text }

// IsZero reports whether a is the zero Address.
func (a Address) IsZero() bool { return a.text == "" }

// MarshalText encodes the address as its text form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.text), nil
}

// Encoder renders public keys for one chain and prefix. It is immutable
// and safe for concurrent use.
type Encoder struct {
	chain Chain
	hrp   string
	curve crypto.Curve
	log   zerolog.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithCurve sets the curve provider used to validate and uncompress keys.
func WithCurve(c crypto.Curve) Option {
	return func(e *Encoder) { e.curve = c }
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Encoder) { e.log = l }
}

// New returns an Encoder for chain. hrp is required by the Bech32 chains
// (Cosmos, Evmos, Klingnet); an empty hrp selects the chain's default.
// It is ignored by Bitcoin and Ethereum.
func New(chain Chain, hrp string, opts ...Option) (*Encoder, error) {
	if _, ok := chainNames[chain]; !ok {
		return nil, keyerr.Newf(keyerr.KindAddress, "new encoder", "unknown chain %d", uint8(chain))
	}
	e := &Encoder{
		chain: chain,
		curve: crypto.Secp256k1{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if chain.UsesBech32() {
		if hrp == "" {
			hrp = chain.DefaultHRP()
		}
		if err := ValidateHRP(hrp); err != nil {
			return nil, err
		}
		e.hrp = strings.ToLower(hrp)
	}
	return e, nil
}

// Chain returns the encoder's chain.
func (e *Encoder) Chain() Chain { return e.chain }

// HRP returns the encoder's prefix.
func (e *Encoder) HRP() string { return e.hrp }

// Encode renders a 33-byte compressed public key. Keys of the wrong
// length or not on the curve fail with a keyerr.KindCurve error.
func (e *Encoder) Encode(pub []byte) (Address, error) {
	if len(pub) != crypto.PublicKeySize {
		return Address{}, keyerr.Newf(keyerr.KindCurve, "encode address",
			"public key must be %d compressed bytes, got %d", crypto.PublicKeySize, len(pub))
	}

	var (
		addr Address
		err  error
	)
	switch e.chain {
	case Bitcoin:
		addr, err = e.encodeBitcoin(pub)
	case Ethereum:
		addr, err = e.encodeEthereum(pub)
	case Cosmos:
		addr, err = e.encodeCosmos(pub)
	case Evmos:
		addr, err = e.encodeEvmos(pub)
	case Klingnet:
		addr, err = e.encodeKlingnet(pub)
	default:
		return Address{}, keyerr.Newf(keyerr.KindAddress, "encode address", "unknown chain %d", uint8(e.chain))
	}
	if err != nil {
		return Address{}, err
	}

	e.log.Debug().
		Str("chain", e.chain.String()).
		Str("hrp", e.hrp).
		Str("address", addr.text).
		Msg("Encoded address")
	return addr, nil
}

// Encode renders pub for chain with the default curve provider.
func Encode(chain Chain, hrp string, pub []byte) (Address, error) {
	e, err := New(chain, hrp)
	if err != nil {
		return Address{}, err
	}
	return e.Encode(pub)
}
