package utils

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Luismorlan/ledger_in_go/model"
)

// Default number of leading '0' hex characters a proof digest needs.
const DefaultDifficulty = 4

// How many proofs are tried between two looks at the context.
const checkInterval = 1 << 12

var ErrMiningInterrupted = errors.New("mining interrupted before a proof was found")

// HashBlock returns the hex SHA256 digest of the canonical encoding of the block.
func HashBlock(block *model.Block) (string, error) {
	blockBytes, err := CanonicalBlockBytes(block)
	if err != nil {
		return "", err
	}
	return SHA256Hex(blockBytes), nil
}

// ValidProof tells whether sha256(lastProof ++ proof) starts with difficulty '0' hex characters.
func ValidProof(lastProof int64, proof int64, difficulty int) bool {
	return HasLeadingZeroHex(SHA256Hex(ProofGuessBytes(lastProof, proof)), difficulty)
}

// ProofOfWork scans proof = 0, 1, 2, ... and returns the first one accepted by ValidProof.
// The search only stops early when ctx is done.
func ProofOfWork(ctx context.Context, lastProof int64, difficulty int) (int64, error) {
	for proof := int64(0); proof < math.MaxInt64; proof++ {
		if proof%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: %v", ErrMiningInterrupted, ctx.Err())
			default:
			}
		}
		if ValidProof(lastProof, proof, difficulty) {
			return proof, nil
		}
	}
	return 0, errors.New("failed to find any proof")
}

// HasLeadingZeroHex reports whether the hex digest starts with n '0' characters.
func HasLeadingZeroHex(digest string, n int) bool {
	if n > len(digest) {
		return false
	}
	for i := 0; i < n; i++ {
		if digest[i] != '0' {
			return false
		}
	}
	return true
}

// CreateNewBlock forges the block that follows prev. txs must already end with the reward.
func CreateNewBlock(prev *model.Block, txs []model.Transaction, proof int64, timestamp float64) (*model.Block, error) {
	prevHash, err := HashBlock(prev)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return &model.Block{
		Index:        prev.Index + 1,
		Timestamp:    timestamp,
		Transactions: txs,
		Proof:        proof,
		PreviousHash: prevHash,
	}, nil
}
