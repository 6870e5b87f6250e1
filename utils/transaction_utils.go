package utils

import (
	"errors"

	"github.com/Luismorlan/ledger_in_go/model"
)

var ErrMissingValues = errors.New("missing values")

// CreateRewardTx creates the system issued transaction that pays the miner.
func CreateRewardTx(recipient string, amount model.Amount) model.Transaction {
	return model.Transaction{
		Sender:    model.RewardSender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// TransactionRequest is a submitted transaction before the required fields are checked. A nil
// field was not present in the request.
type TransactionRequest struct {
	Sender    *string       `json:"sender"`
	Recipient *string       `json:"recipient"`
	Amount    *model.Amount `json:"amount"`
}

// ToTransaction checks that sender, recipient and amount are all present and that the amount has
// a canonical form. Signs are not checked.
func (r *TransactionRequest) ToTransaction() (model.Transaction, error) {
	if r == nil || r.Sender == nil || r.Recipient == nil || r.Amount == nil {
		return model.Transaction{}, ErrMissingValues
	}
	if err := r.Amount.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		Sender:    *r.Sender,
		Recipient: *r.Recipient,
		Amount:    *r.Amount,
	}, nil
}
