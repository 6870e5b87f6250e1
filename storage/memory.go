package storage

import (
	"sync"

	"github.com/Luismorlan/ledger_in_go/model"
)

// MemoryStore keeps the encoded chain in memory. Blocks go through the same encoding as the
// other backends, so Load never aliases what was saved.
type MemoryStore struct {
	data []byte
	mu   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNotFound
	}
	return DecodeChain(s.data)
}

func (s *MemoryStore) Save(blocks []model.Block) error {
	data, err := EncodeChain(blocks)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// SetRaw replaces the stored document without any validation.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

func (s *MemoryStore) Close() error {
	return nil
}
