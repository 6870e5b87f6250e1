package model

// The sender of every mining reward. No user should submit transactions with this sender.
const RewardSender = "0"

type Transaction struct {
	// Who sends the value. Arbitrary identifier, "0" for the miner's reward.
	Sender string `json:"sender"`
	// Who receives the value.
	Recipient string `json:"recipient"`
	// How much value to transfer, kept exactly as it was submitted.
	Amount Amount `json:"amount"`
}

// IsReward tells whether the transaction is a system issued mining reward.
func (t Transaction) IsReward() bool {
	return t.Sender == RewardSender
}

type TransactionPool struct {
	// TransactionPool contains all pending transactions that haven't been put in a block yet,
	// in the order they were submitted.
	Txs []Transaction
}

// NewTransactionPool creates a new transaction pool with no transaction at all.
func NewTransactionPool() TransactionPool {
	return TransactionPool{
		Txs: []Transaction{},
	}
}

func (p *TransactionPool) Add(tx Transaction) {
	p.Txs = append(p.Txs, tx)
}

func (p *TransactionPool) Len() int {
	return len(p.Txs)
}

// Drain returns every pending transaction and empties the pool. The returned slice is never
// shared with the pool, so later submissions cannot show up in it.
func (p *TransactionPool) Drain() []Transaction {
	txs := make([]Transaction, len(p.Txs))
	copy(txs, p.Txs)
	p.Txs = []Transaction{}
	return txs
}

// Restore puts txs back in front of whatever is pending now.
func (p *TransactionPool) Restore(txs []Transaction) {
	restored := make([]Transaction, 0, len(txs)+len(p.Txs))
	restored = append(restored, txs...)
	p.Txs = append(restored, p.Txs...)
}
