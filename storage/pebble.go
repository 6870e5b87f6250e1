package storage

import (
	"fmt"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/cockroachdb/pebble"
)

// PebbleStore keeps the chain document under a single key of a Pebble database.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens or creates the database directory at path.
func OpenPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Load() ([]model.Block, error) {
	value, closer, err := s.db.Get(chainKey)
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// value is only valid until closer.Close(), DecodeChain copies what it needs.
	return DecodeChain(value)
}

func (s *PebbleStore) Save(blocks []model.Block) error {
	data, err := EncodeChain(blocks)
	if err != nil {
		return err
	}
	return s.db.Set(chainKey, data, pebble.Sync)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
