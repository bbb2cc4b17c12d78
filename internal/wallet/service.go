// Package wallet derives accounts and their addresses for the built-in
// chain profiles.
package wallet

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Klingon-tech/klingnet-keys/pkg/address"
	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// MaxAccounts bounds a single Addresses call.
const MaxAccounts = 1000

// Account is one derived address.
type Account struct {
	Index     uint32
	Path      hd.DerivationPath
	Address   address.Address
	PublicKey hd.PublicKey
}

// Derived is a key pair together with its address.
type Derived struct {
	KeyPair *hd.KeyPair
	Address address.Address
}

// Service derives accounts with a shared engine.
type Service struct {
	engine  *hd.Engine
	log     zerolog.Logger
	addrLog zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithAddressLogger sets the logger handed to address encoders.
func WithAddressLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.addrLog = l }
}

// New creates a Service. A nil engine uses hd.NewEngine().
func New(engine *hd.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = hd.NewEngine()
	}
	s := &Service{engine: engine, log: zerolog.Nop(), addrLog: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the service's derivation engine.
func (s *Service) Engine() *hd.Engine { return s.engine }

// Open builds the master key pair from a mnemonic phrase.
func (s *Service) Open(phrase, passphrase string) (*hd.KeyPair, error) {
	return s.engine.FromMnemonic(phrase, passphrase)
}

// Encoder returns the address encoder for profile. A non-empty hrp
// overrides the profile's prefix.
func (s *Service) Encoder(p Profile, hrp string) (*address.Encoder, error) {
	if hrp == "" {
		hrp = p.HRP
	}
	return address.New(p.Chain, hrp,
		address.WithCurve(s.engine.Curve()),
		address.WithLogger(s.addrLog))
}

// Derive derives path from the master of kp and encodes its address.
func (s *Service) Derive(kp *hd.KeyPair, p Profile, path hd.DerivationPath) (*Derived, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	enc, err := s.Encoder(p, "")
	if err != nil {
		return nil, err
	}
	child, err := kp.DerivePath(path)
	if err != nil {
		return nil, err
	}
	pub := child.PublicKey()
	addr, err := enc.Encode(pub[:])
	if err != nil {
		child.Zero()
		return nil, err
	}
	return &Derived{KeyPair: child, Address: addr}, nil
}

// Addresses derives count consecutive receive or change addresses
// starting at index start. Derivation runs in parallel; the result is
// ordered by index.
func (s *Service) Addresses(ctx context.Context, kp *hd.KeyPair, p Profile, account, change, start, count uint32) ([]Account, error) {
	const op = "derive addresses"

	if count == 0 || count > MaxAccounts {
		return nil, keyerr.Newf(keyerr.KindPath, op, "count %d outside [1, %d]", count, MaxAccounts)
	}
	if account >= hd.HardenedOffset || change >= hd.HardenedOffset {
		return nil, keyerr.Newf(keyerr.KindPath, op, "account %d or change %d out of range (must be < 2^31)", account, change)
	}
	if uint64(start)+uint64(count) > uint64(hd.HardenedOffset) {
		return nil, keyerr.Newf(keyerr.KindPath, op, "index range %d+%d exceeds %d", start, count, hd.HardenedOffset)
	}

	enc, err := s.Encoder(p, "")
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := uint32(0); i < count; i++ {
		index := start + i
		path := p.Path(account, change, index)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child, err := kp.DerivePath(path)
			if err != nil {
				return fmt.Errorf("index %d: %w", index, err)
			}
			defer child.Zero()

			pub := child.PublicKey()
			addr, err := enc.Encode(pub[:])
			if err != nil {
				return fmt.Errorf("index %d: %w", index, err)
			}
			accounts[i] = Account{Index: index, Path: path, Address: addr, PublicKey: pub}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("profile", p.Name).
		Uint32("account", account).
		Uint32("change", change).
		Uint32("start", start).
		Uint32("count", count).
		Msg("Derived addresses")
	return accounts, nil
}

// Watch derives the non-hardened path below an extended public key and
// encodes the address. hrp overrides the profile's prefix when non-empty.
func (s *Service) Watch(xpub *hd.ExtendedKey, p Profile, hrp string, path hd.DerivationPath) (*Account, error) {
	enc, err := s.Encoder(p, hrp)
	if err != nil {
		return nil, err
	}
	child, err := xpub.Neuter().DerivePath(path)
	if err != nil {
		return nil, err
	}

	var pub hd.PublicKey
	copy(pub[:], child.PublicKey())
	addr, err := enc.Encode(pub[:])
	if err != nil {
		return nil, err
	}
	return &Account{Index: child.ChildIndex(), Path: path, Address: addr, PublicKey: pub}, nil
}
