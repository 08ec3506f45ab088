package store

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ahrav/go-featurize/internal/domain"
)

var (
	boltBucket   = []byte("fitted_state")
	boltStateKey = []byte("current")
)

// BoltStore persists fitted state in a bbolt database. Writes run inside
// a single transaction, so publication is atomic by construction.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path and ensures the
// state bucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create state bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save publishes the state under a fixed key in one write transaction.
func (s *BoltStore) Save(_ context.Context, state *domain.FittedState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put(boltStateKey, data)
	})
}

// Load reads back the published state.
func (s *BoltStore) Load(_ context.Context) (*domain.FittedState, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get(boltStateKey); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read state database: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: no state in database", domain.ErrStateNotFound)
	}
	return decodeState(data)
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error { return s.db.Close() }
