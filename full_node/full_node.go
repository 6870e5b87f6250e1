package full_node

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/storage"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/jinzhu/copier"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrPersistFailed   = errors.New("failed to persist chain")
	ErrUnhashableBlock = errors.New("block cannot be hashed")
)

// A full node maintains the blockchain, its pending transactions and their persistence.
type FullNode struct {
	// The blockchain it needs to maintain.
	blockchain *model.Blockchain
	// Transaction pool it need to maintain. Incoming transaction are added to this pool.
	txPool *model.TransactionPool
	// Where the chain is saved after every change.
	store storage.ChainStore
	// Blockchain config.
	config config.AppConfig
	// A single mutex for changing internal state.
	m sync.RWMutex
	// Only one miner can advance the chain at a time.
	mineMutex sync.Mutex
	// A unique identifier of this node, it receives the reward when the miner names nobody.
	uuid string
	// Clock for block timestamps, replaced in tests.
	now func() time.Time
}

// NewNodeID creates a random node identifier: a v4 uuid in hex, without dashes.
func NewNodeID() string {
	return strings.Replace(uuid.NewV4().String(), "-", "", -1)
}

// Create a full node on top of store. The persisted chain is loaded when there is one, otherwise
// a genesis block is created and saved. A corrupt persisted chain fails the whole construction.
func NewFullNode(c config.AppConfig, store storage.ChainStore) (*FullNode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id := c.NODE_ID
	if id == "" {
		id = NewNodeID()
	}
	txPool := model.NewTransactionPool()
	f := &FullNode{
		txPool: &txPool,
		store:  store,
		config: c,
		m:      sync.RWMutex{},
		uuid:   id,
		now:    time.Now,
	}

	blocks, err := store.Load()
	switch {
	case err == nil:
		f.blockchain = &model.Blockchain{Blocks: blocks}
		log.Printf("Loaded chain with %d blocks", len(blocks))
	case errors.Is(err, storage.ErrNotFound):
		bc := model.NewBlockChain(unixSeconds(f.now()))
		f.blockchain = &bc
		if err := f.store.Save(f.blockchain.Blocks); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
		log.Println("Created genesis block")
	default:
		return nil, err
	}
	return f, nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func (f *FullNode) GetNodeID() string {
	return f.uuid
}

func (f *FullNode) GetConfig() config.AppConfig {
	return f.config
}

// AddTransactionToPool queues tx for the next block and returns the index that block will
// probably get. The index is advisory: nothing is reserved.
func (f *FullNode) AddTransactionToPool(tx model.Transaction) int64 {
	f.m.Lock()
	defer f.m.Unlock()

	f.txPool.Add(tx)
	return f.blockchain.Tail().Index + 1
}

// NewTransaction is AddTransactionToPool for the three transaction fields.
func (f *FullNode) NewTransaction(sender string, recipient string, amount model.Amount) int64 {
	return f.AddTransactionToPool(model.Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
}

// Mine finds the proof for a new block, pays recipient and moves every pending transaction into
// the block. The proof search runs without holding the state lock, so submissions and reads keep
// working meanwhile; concurrent calls to Mine are serialized.
// When the chain cannot be saved the block is dropped, the pending transactions are put back and
// an error wrapping ErrPersistFailed is returned.
func (f *FullNode) Mine(ctx context.Context, recipient string) (*model.Block, error) {
	f.mineMutex.Lock()
	defer f.mineMutex.Unlock()

	if recipient == "" {
		recipient = f.uuid
	}
	if timeout := f.config.MineTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Only miners append blocks, so the tail stays the same until we append ours.
	f.m.RLock()
	lastProof := f.blockchain.Tail().Proof
	f.m.RUnlock()

	proof, err := utils.ProofOfWork(ctx, lastProof, f.config.DIFFICULTY)
	if err != nil {
		return nil, err
	}

	f.m.Lock()
	defer f.m.Unlock()

	last := f.blockchain.Tail()
	f.txPool.Add(utils.CreateRewardTx(recipient, model.NewAmount(f.config.MINING_REWARD)))
	txs := f.txPool.Drain()
	block, err := utils.CreateNewBlock(last, txs, proof, unixSeconds(f.now()))
	if err == nil {
		// The next block has to link to this one.
		_, err = utils.HashBlock(block)
	}
	if err != nil {
		// Put back everything but the reward.
		f.txPool.Restore(txs[:len(txs)-1])
		return nil, fmt.Errorf("%w: %v", ErrUnhashableBlock, err)
	}

	length := f.blockchain.Len()
	f.blockchain.Append(*block)
	if err := f.store.Save(f.blockchain.Blocks); err != nil {
		f.blockchain.Truncate(length)
		f.txPool.Restore(txs[:len(txs)-1])
		log.Printf("Dropped block %d: %v", block.Index, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	log.Printf("Forged block %d with %d transactions, proof %d", block.Index, len(block.Transactions), block.Proof)

	res := copyBlock(block)
	return &res, nil
}

// GetChain returns a deep copy of every block, genesis first.
func (f *FullNode) GetChain() []model.Block {
	f.m.RLock()
	defer f.m.RUnlock()
	blocks := []model.Block{}
	copier.CopyWithOption(&blocks, f.blockchain.Blocks, copier.Option{DeepCopy: true})
	return blocks
}

// LastBlock returns a copy of the tail of the chain.
func (f *FullNode) LastBlock() model.Block {
	f.m.RLock()
	defer f.m.RUnlock()
	return copyBlock(f.blockchain.Tail())
}

// GetHeight returns the number of blocks in the chain.
func (f *FullNode) GetHeight() int64 {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Len()
}

// PendingTransactions returns a copy of the pool, in submission order.
func (f *FullNode) PendingTransactions() []model.Transaction {
	f.m.RLock()
	defer f.m.RUnlock()
	txs := make([]model.Transaction, f.txPool.Len())
	copy(txs, f.txPool.Txs)
	return txs
}

// Close releases the store.
func (f *FullNode) Close() error {
	return f.store.Close()
}

func copyBlock(b *model.Block) model.Block {
	res := model.Block{}
	copier.CopyWithOption(&res, b, copier.Option{DeepCopy: true})
	return res
}
