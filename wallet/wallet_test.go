package wallet

import (
	"context"
	"net"
	"testing"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/Luismorlan/ledger_in_go/storage"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// Connect a wallet to a fresh full node served over an in-memory listener.
func GetTestWallet(t *testing.T) (*Wallet, *full_node.FullNode) {
	c := config.Default()
	c.DIFFICULTY = 1
	c.STORAGE = string(storage.Memory)
	c.NODE_ID = "node"
	f, err := full_node.NewFullNode(c, storage.NewMemoryStore())
	require.Nil(t, err)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	service.RegisterLedgerServiceServer(s, full_node.NewFullNodeServer(f))
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.Nil(t, err)

	w := NewWallet()
	w.SetConnection(conn)
	t.Cleanup(func() { w.Close() })
	return w, f
}

func blockHash(t *testing.T, b *model.Block) string {
	digest, err := utils.HashBlock(b)
	require.Nil(t, err)
	return digest
}

func TestNotConnected(t *testing.T) {
	w := NewWallet()
	_, err := w.SendTransaction("alice", "bob", model.NewAmount(1))
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = w.Mine("")
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = w.GetChain()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, w.Close())
}

func TestSendTransaction(t *testing.T) {
	w, f := GetTestWallet(t)

	index, err := w.SendTransaction("alice", "bob", model.ParseAmount("10"))
	require.Nil(t, err)
	assert.Equal(t, int64(2), index)
	index, err = w.SendTransaction("bob", "carol", model.ParseAmount("ten"))
	require.Nil(t, err)
	assert.Equal(t, int64(2), index)

	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: model.NewAmount(10)},
		{Sender: "bob", Recipient: "carol", Amount: model.NewStringAmount("ten")},
	}, f.PendingTransactions())
}

func TestMineAndGetChain(t *testing.T) {
	w, f := GetTestWallet(t)
	_, err := w.SendTransaction("alice", "bob", model.NewAmount(10))
	require.Nil(t, err)

	b, err := w.Mine("")
	require.Nil(t, err)
	assert.Equal(t, int64(2), b.Index)
	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: model.NewAmount(10)},
		{Sender: "0", Recipient: "node", Amount: model.NewAmount(1)},
	}, b.Transactions)

	b, err = w.Mine("miner")
	require.Nil(t, err)
	assert.Equal(t, int64(3), b.Index)
	assert.Equal(t, "miner", b.Transactions[0].Recipient)

	chain, err := w.GetChain()
	require.Nil(t, err)
	assert.Equal(t, f.GetChain(), chain)
	require.Len(t, chain, 3)
	for i := 1; i < len(chain); i++ {
		assert.Equal(t, blockHash(t, &chain[i-1]), chain[i].PreviousHash)
	}
	assert.Empty(t, f.PendingTransactions())
}

func TestClosedConnection(t *testing.T) {
	w, _ := GetTestWallet(t)
	conn := w.conn
	require.Nil(t, w.Close())

	_, err := service.NewLedgerServiceClient(conn).GetChain(context.Background(), &service.GetChainRequest{})
	assert.Equal(t, codes.Canceled, status.Code(err))
}
