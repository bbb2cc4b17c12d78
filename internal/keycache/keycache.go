// Package keycache stores derived child keys so repeated derivations below
// the same parent skip the HMAC and curve work.
package keycache

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/klingnet-keys/internal/storage"
	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendNone, BackendMemory, BackendBadger}

const keyPrefix = "xkey/"

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Store implements hd.Cache over a storage.DB. Entries live under
// "xkey/<network>/" and are keyed by the BLAKE3 hash of the cache key.
// Storage failures are logged and treated as misses.
type Store struct {
	inner storage.DB
	db    *storage.PrefixDB
	log   zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a Store over db for the named network. The Store takes
// ownership of db and closes it in Close.
func New(db storage.DB, network string, logger zerolog.Logger) *Store {
	return &Store{
		inner: db,
		db:    storage.NewPrefixDB(db, []byte(keyPrefix+network+"/")),
		log:   logger,
	}
}

// Open creates a Store for the given backend. It returns (nil, nil) for
// BackendNone and the empty string.
func Open(backend, network string, logger zerolog.Logger) (*Store, error) {
	switch backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return New(storage.NewMemory(), network, logger), nil
	case BackendBadger:
		db, err := storage.NewBadgerInMemory()
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return New(db, network, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

func storageKey(key []byte) []byte {
	h := crypto.Blake3(key)
	return h[:]
}

// Get returns the cached value for key.
func (s *Store) Get(key []byte) ([]byte, bool) {
	val, err := s.db.Get(storageKey(key))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn().Err(err).Msg("Cache read failed")
		}
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return val, true
}

// Put stores value under key.
func (s *Store) Put(key, value []byte) {
	if err := s.db.Put(storageKey(key), value); err != nil {
		s.log.Warn().Err(err).Msg("Cache write failed")
	}
}

// Stats returns hit and miss counters and the number of stored entries.
func (s *Store) Stats() Stats {
	st := Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
	_ = s.db.ForEach(nil, func(_, _ []byte) error {
		st.Entries++
		return nil
	})
	return st
}

// Purge removes every entry for this network.
func (s *Store) Purge() error {
	if err := s.db.DeleteAll(); err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	s.log.Debug().Msg("Cache purged")
	return nil
}

// Close purges the cache and closes the underlying database.
func (s *Store) Close() error {
	purgeErr := s.Purge()
	if err := s.inner.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return purgeErr
}
