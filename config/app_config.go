package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/Luismorlan/ledger_in_go/storage"
	"gopkg.in/yaml.v2"
)

// This is the global app config for the ledger node.
type AppConfig struct {
	// How many leading '0' hex characters form a valid proof.
	DIFFICULTY int
	// The amount paid to the miner of each block.
	MINING_REWARD int64
	// Storage backend: file, leveldb, pebble or memory.
	STORAGE string
	// Where the chain is persisted. A file for the file backend, a directory otherwise.
	CHAIN_FILE string
	// Port of the JSON HTTP API.
	HTTP_PORT string
	// Port of the gRPC service.
	GRPC_PORT string
	// Reward recipient when a miner does not name one. Generated when empty.
	NODE_ID string
	// Upper bound of a single proof search, 0 means no bound.
	MINE_TIMEOUT_SECONDS int
}

// Default returns the config the node runs with when no file overrides it.
func Default() AppConfig {
	return AppConfig{
		DIFFICULTY:    4,
		MINING_REWARD: 1,
		STORAGE:       string(storage.File),
		CHAIN_FILE:    "blockchain.json",
		HTTP_PORT:     "5000",
		GRPC_PORT:     "10000",
	}
}

// ParseAppConfig reads the YAML file at path on top of the defaults.
func ParseAppConfig(path string) (AppConfig, error) {
	c := Default()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	err = yaml.UnmarshalStrict(yamlFile, &c)
	if err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c AppConfig) Validate() error {
	if c.DIFFICULTY < 1 || c.DIFFICULTY > 64 {
		return fmt.Errorf("difficulty must be within 1..64, got %d", c.DIFFICULTY)
	}
	if !storage.IsValidKind(storage.Kind(c.STORAGE)) {
		return fmt.Errorf("unknown storage %q", c.STORAGE)
	}
	if c.CHAIN_FILE == "" && c.STORAGE != string(storage.Memory) {
		return errors.New("chain_file is required")
	}
	if c.MINE_TIMEOUT_SECONDS < 0 {
		return errors.New("mine_timeout_seconds cannot be negative")
	}
	return nil
}

// MineTimeout is the bound of a single proof search, 0 when unbounded.
func (c AppConfig) MineTimeout() time.Duration {
	return time.Duration(c.MINE_TIMEOUT_SECONDS) * time.Second
}
