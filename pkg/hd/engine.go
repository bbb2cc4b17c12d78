// Package hd implements BIP-32 hierarchical deterministic key derivation.
//
// Every KeyPair keeps the seed it was created from and re-derives each
// requested path from the master key. Deriving p2 from a KeyPair at p1 is
// not the same as deriving p1 followed by p2.
package hd

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// Seed length bounds in bytes (128 to 512 bits).
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

var masterHMACKey = []byte("Bitcoin seed")

// Cache stores derived children keyed by the parent's 78-byte
// serialization followed by ser32(index). Values are the child's 78-byte
// private serialization. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key []byte) ([]byte, bool)
	Put(key, value []byte)
}

// SeedProvider turns a mnemonic phrase and passphrase into a seed.
type SeedProvider interface {
	Seed(phrase, passphrase string) ([]byte, error)
}

// Engine derives keys. It is safe for concurrent use once built.
type Engine struct {
	curve   crypto.Curve
	network Network
	cache   Cache
	seeds   SeedProvider
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCurve sets the curve provider.
func WithCurve(c crypto.Curve) Option {
	return func(e *Engine) { e.curve = c }
}

// WithNetwork sets the extended key version bytes.
func WithNetwork(n Network) Option {
	return func(e *Engine) { e.network = n }
}

// WithCache enables the child derivation cache.
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithSeedProvider replaces the BIP-39 seed provider.
func WithSeedProvider(p SeedProvider) Option {
	return func(e *Engine) { e.seeds = p }
}

// WithLogger sets the debug logger. Seeds and private keys are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine using secp256k1, mainnet versions, BIP-39
// seeds and no cache unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		curve:   crypto.Secp256k1{},
		network: Mainnet,
		seeds:   mnemonic.BIP39{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Curve returns the engine's curve provider.
func (e *Engine) Curve() crypto.Curve { return e.curve }

// Network returns the engine's network.
func (e *Engine) Network() Network { return e.network }

// FromSeed builds the master KeyPair with the default engine.
func FromSeed(seed []byte) (*KeyPair, error) {
	return defaultEngine.FromSeed(seed)
}

// FromMnemonic builds the master KeyPair from a BIP-39 phrase with the
// default engine.
func FromMnemonic(phrase, passphrase string) (*KeyPair, error) {
	return defaultEngine.FromMnemonic(phrase, passphrase)
}

// FromSeed builds the master KeyPair. The seed is copied.
func (e *Engine) FromSeed(seed []byte) (*KeyPair, error) {
	return e.keyPair(seed, nil)
}

// FromMnemonic converts the phrase to a seed and builds the master KeyPair.
func (e *Engine) FromMnemonic(phrase, passphrase string) (*KeyPair, error) {
	seed, err := e.seeds.Seed(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(seed)
	return e.FromSeed(seed)
}

// Master computes the master extended private key for seed.
func (e *Engine) Master(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, keyerr.Newf(keyerr.KindSeed, "master key",
			"seed length %d outside [%d, %d]", len(seed), MinSeedSize, MaxSeedSize)
	}

	il, ir := hmacSHA512(masterHMACKey, seed)
	pub, err := e.curve.PublicKey(il)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}

	k := &ExtendedKey{
		eng:     e,
		network: e.network,
		priv:    il,
		pub:     pub,
	}
	copy(k.chainCode[:], ir)
	crypto.Zero(ir)
	return k, nil
}

// Derive computes the extended private key at path from seed.
func (e *Engine) Derive(seed []byte, path DerivationPath) (*ExtendedKey, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	master, err := e.Master(seed)
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return master, nil
	}
	key, err := master.DerivePath(path)
	master.Zero()
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", path, err)
	}
	fp := key.ParentFingerprint()
	e.log.Debug().
		Str("path", path.String()).
		Uint8("depth", key.depth).
		Hex("parent_fingerprint", fp[:]).
		Msg("Derived key")
	return key, nil
}

func (e *Engine) keyPair(seed []byte, path DerivationPath) (*KeyPair, error) {
	xprv, err := e.Derive(seed, path)
	if err != nil {
		return nil, err
	}
	kp := &KeyPair{
		eng:  e,
		seed: bytes.Clone(seed),
		path: path.Append(),
		xprv: xprv,
		xpub: xprv.Neuter(),
	}
	copy(kp.priv[:], xprv.priv)
	copy(kp.pub[:], xprv.pub)
	return kp, nil
}

// child derives the key at index i below parent.
func (e *Engine) child(parent *ExtendedKey, i uint32) (*ExtendedKey, error) {
	const op = "derive child"
	seg := SegmentFromIndex(i)

	if parent.depth == MaxDepth {
		return nil, keyerr.Newf(keyerr.KindPath, op, "depth limit %d reached", MaxDepth)
	}
	if !parent.IsPrivate() {
		if seg.Hardened {
			return nil, keyerr.Newf(keyerr.KindPath, op, "hardened index %s requires a private key", seg)
		}
		return e.publicChild(parent, i)
	}

	var cacheKey []byte
	if e.cache != nil {
		cacheKey = binary.BigEndian.AppendUint32(parent.Serialize(), i)
		if raw, ok := e.cache.Get(cacheKey); ok {
			cached, err := e.decode(raw, []Network{parent.network})
			switch {
			case err != nil:
				e.log.Warn().Err(err).Msg("Discarding unreadable cache entry")
			case !cached.IsPrivate():
				e.log.Warn().Str("reason", "public key").Msg("Discarding cache entry")
			default:
				return cached, nil
			}
		}
	}

	data := make([]byte, 0, keyDataSize+4)
	if seg.Hardened {
		data = append(data, 0x00)
		data = append(data, parent.priv...)
	} else {
		data = append(data, parent.pub...)
	}
	data = binary.BigEndian.AppendUint32(data, i)

	il, ir := hmacSHA512(parent.chainCode[:], data)
	crypto.Zero(data)
	defer crypto.Zero(il)

	priv, err := e.curve.AddScalars(il, parent.priv)
	if err != nil {
		return nil, fmt.Errorf("child %s: %w", seg, err)
	}
	pub, err := e.curve.PublicKey(priv)
	if err != nil {
		return nil, fmt.Errorf("child %s: %w", seg, err)
	}

	k := &ExtendedKey{
		eng:        e,
		network:    parent.network,
		depth:      parent.depth + 1,
		parentFP:   parent.Fingerprint(),
		childIndex: i,
		priv:       priv,
		pub:        pub,
	}
	copy(k.chainCode[:], ir)

	if e.cache != nil {
		e.cache.Put(cacheKey, k.Serialize())
	}
	return k, nil
}

// publicChild computes K_i = point(I_L) + K_par.
func (e *Engine) publicChild(parent *ExtendedKey, i uint32) (*ExtendedKey, error) {
	data := make([]byte, 0, keyDataSize+4)
	data = append(data, parent.pub...)
	data = binary.BigEndian.AppendUint32(data, i)

	il, ir := hmacSHA512(parent.chainCode[:], data)
	pub, err := e.curve.AddPoint(il, parent.pub)
	if err != nil {
		return nil, fmt.Errorf("child %d: %w", i, err)
	}

	k := &ExtendedKey{
		eng:        e,
		network:    parent.network,
		depth:      parent.depth + 1,
		parentFP:   parent.Fingerprint(),
		childIndex: i,
		pub:        pub,
	}
	copy(k.chainCode[:], ir)
	return k, nil
}

func hmacSHA512(key, data []byte) (il, ir []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
