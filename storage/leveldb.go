package storage

import (
	"fmt"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBStore keeps the chain document under a single key of a LevelDB database.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens or creates the database directory at path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Load() ([]model.Block, error) {
	data, err := s.db.Get(chainKey, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeChain(data)
}

func (s *LevelDBStore) Save(blocks []model.Block) error {
	data, err := EncodeChain(blocks)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put(chainKey, data)
	return s.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
