package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Luismorlan/ledger_in_go/model"
)

var (
	// ErrNotFound is returned by Load when nothing has been persisted yet.
	ErrNotFound = errors.New("no persisted chain")
	// ErrCorruptChain is returned by Load when the persisted chain cannot be decoded.
	ErrCorruptChain = errors.New("persisted chain is corrupt")
)

// ChainStore persists the whole chain as one document. Every Save fully replaces what was stored
// before and Load returns exactly what the last successful Save wrote.
type ChainStore interface {
	// Load returns the persisted blocks, or ErrNotFound.
	Load() ([]model.Block, error)
	// Save overwrites the persisted chain with blocks.
	Save(blocks []model.Block) error
	// Close releases the underlying storage.
	Close() error
}

// Kind names a storage backend.
type Kind string

const (
	File    Kind = "file"
	LevelDB Kind = "leveldb"
	Pebble  Kind = "pebble"
	Memory  Kind = "memory"
)

// Key under which the key-value backends keep the chain document.
var chainKey = []byte("chain")

// NewChainStore opens the backend of the given kind at path.
func NewChainStore(kind Kind, path string) (ChainStore, error) {
	switch kind {
	case File, "":
		return NewFileStore(path), nil
	case LevelDB:
		return OpenLevelDBStore(path)
	case Pebble:
		return OpenPebbleStore(path)
	case Memory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage kind %q", kind)
	}
}

// IsValidKind tells whether NewChainStore knows kind.
func IsValidKind(kind Kind) bool {
	switch kind {
	case File, LevelDB, Pebble, Memory, "":
		return true
	}
	return false
}

// EncodeChain produces the persisted chain format: a JSON list of block records.
func EncodeChain(blocks []model.Block) ([]byte, error) {
	records := make([]model.Block, len(blocks))
	copy(records, blocks)
	for i := range records {
		if records[i].Transactions == nil {
			records[i].Transactions = []model.Transaction{}
		}
	}
	return json.MarshalIndent(records, "", "    ")
}

// DecodeChain parses the persisted chain format. An empty list is corrupt too, a chain always
// has its genesis block.
func DecodeChain(data []byte) ([]model.Block, error) {
	var blocks []model.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptChain, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrCorruptChain)
	}
	for i := range blocks {
		if blocks[i].Transactions == nil {
			blocks[i].Transactions = []model.Transaction{}
		}
	}
	return blocks, nil
}
