package storage

import (
	"fmt"
	"os"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
)

// FileStore keeps the chain in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() ([]model.Block, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chain file %s: %w", s.path, err)
	}
	return DecodeChain(data)
}

// Save rewrites the whole file. A failed save keeps the previous content.
func (s *FileStore) Save(blocks []model.Block) error {
	data, err := EncodeChain(blocks)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chain file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
