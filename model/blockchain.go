package model

const (
	// The genesis block has no predecessor, it links to this literal instead.
	GenesisPreviousHash = "1"
	// Proof stored in the genesis block. The first mined block searches relative to it.
	GenesisProof = 100
)

type Block struct {
	// 1-based position in the chain.
	Index int64 `json:"index"`
	// Wall clock creation time, seconds since epoch.
	Timestamp float64 `json:"timestamp"`
	// Transactions taken from the pending pool. The last one is the miner's reward.
	Transactions []Transaction `json:"transactions"`
	// Solution of the proof of work puzzle relative to the previous block's proof.
	Proof int64 `json:"proof"`
	// Hash of the previous block in the hex format.
	PreviousHash string `json:"previous_hash"`
}

// IsGenesis tells whether b is the first block of a chain.
func (b *Block) IsGenesis() bool {
	return b.Index == 1 && b.PreviousHash == GenesisPreviousHash
}

// Blockchain is the ordered, append-only list of blocks, genesis first.
type Blockchain struct {
	Blocks []Block
}

// Create a new blockchain that contains only the genesis block.
func NewBlockChain(timestamp float64) Blockchain {
	return Blockchain{
		Blocks: []Block{NewGenesisBlock(timestamp)},
	}
}

func NewGenesisBlock(timestamp float64) Block {
	return Block{
		Index:        1,
		Timestamp:    timestamp,
		Transactions: []Transaction{},
		Proof:        GenesisProof,
		PreviousHash: GenesisPreviousHash,
	}
}

// Tail returns the last block. The chain always holds at least the genesis block.
func (bc *Blockchain) Tail() *Block {
	return &bc.Blocks[len(bc.Blocks)-1]
}

func (bc *Blockchain) Len() int64 {
	return int64(len(bc.Blocks))
}

// Append adds b at the end of the chain.
func (bc *Blockchain) Append(b Block) {
	bc.Blocks = append(bc.Blocks, b)
}

// Truncate drops every block after the first n.
func (bc *Blockchain) Truncate(n int64) {
	bc.Blocks = bc.Blocks[:n]
}
