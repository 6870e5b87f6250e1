package service

import (
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
)

type SetTransactionRequest struct {
	Tx *utils.TransactionRequest `json:"tx"`
}

type SetTransactionResponse struct {
	// Index of the block that will probably hold the transaction.
	Index int64 `json:"index"`
}

type MineRequest struct {
	// Reward recipient, the node id when empty.
	Recipient string `json:"recipient"`
}

type MineResponse struct {
	Block *model.Block `json:"block"`
}

type GetChainRequest struct{}

type GetChainResponse struct {
	Chain  []model.Block `json:"chain"`
	Length int64         `json:"length"`
}
