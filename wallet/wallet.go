package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/Luismorlan/ledger_in_go/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const requestTimeout = 10 * time.Second

var ErrNotConnected = errors.New("wallet is not connected to a full node, use connect <ip> <port>")

// Wallet submits transactions to a full node and asks it to mine.
type Wallet struct {
	FullNodeClient service.LedgerServiceClient
	conn           *grpc.ClientConn
	// Mining waits for the proof search, which is unbounded on the node side unless configured.
	MineTimeout time.Duration
}

func NewWallet() *Wallet {
	return &Wallet{MineTimeout: 10 * time.Minute}
}

// SetFullNodeConnection dials the full node at ipAddr:port, replacing any previous connection.
func (w *Wallet) SetFullNodeConnection(ipAddr string, port string) error {
	serverAddr := net.JoinHostPort(ipAddr, port)
	conn, err := grpc.Dial(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", serverAddr, err)
	}
	w.SetConnection(conn)
	return nil
}

// SetConnection uses an established connection to a full node.
func (w *Wallet) SetConnection(conn *grpc.ClientConn) {
	if w.conn != nil {
		w.conn.Close()
	}
	w.conn = conn
	w.FullNodeClient = service.NewLedgerServiceClient(conn)
}

func (w *Wallet) Close() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	w.FullNodeClient = nil
	return err
}

// SendTransaction queues a transaction on the full node and returns the index of the block it
// will probably land in.
func (w *Wallet) SendTransaction(sender string, recipient string, amount model.Amount) (int64, error) {
	if w.FullNodeClient == nil {
		return 0, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := w.FullNodeClient.SetTransaction(ctx, &service.SetTransactionRequest{
		Tx: &utils.TransactionRequest{
			Sender:    &sender,
			Recipient: &recipient,
			Amount:    &amount,
		},
	})
	if err != nil {
		return 0, err
	}
	return res.Index, nil
}

// Mine asks the full node to forge a block. An empty recipient lets the node pay itself.
func (w *Wallet) Mine(recipient string) (*model.Block, error) {
	if w.FullNodeClient == nil {
		return nil, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.MineTimeout)
	defer cancel()
	res, err := w.FullNodeClient.Mine(ctx, &service.MineRequest{Recipient: recipient})
	if err != nil {
		return nil, err
	}
	return res.Block, nil
}

func (w *Wallet) GetChain() ([]model.Block, error) {
	if w.FullNodeClient == nil {
		return nil, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := w.FullNodeClient.GetChain(ctx, &service.GetChainRequest{})
	if err != nil {
		return nil, err
	}
	return res.Chain, nil
}

func (w *Wallet) Log(msg string) {
	log.Println(msg)
}
