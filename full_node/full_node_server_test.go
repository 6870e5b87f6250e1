package full_node

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Luismorlan/ledger_in_go/commands"
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

// Start a gRPC server for f on an in-memory listener and return a client connected to it.
func createTestClient(t *testing.T, f *FullNode) service.LedgerServiceClient {
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	service.RegisterLedgerServiceServer(s, NewFullNodeServer(f))
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.Nil(t, err)
	t.Cleanup(func() { conn.Close() })
	return service.NewLedgerServiceClient(conn)
}

func strPtr(s string) *string {
	return &s
}

func TestServerSetTransaction(t *testing.T) {
	f := createTestNode(t)
	client := createTestClient(t, f)

	amount := model.NewAmount(10)
	res, err := client.SetTransaction(context.Background(), &service.SetTransactionRequest{
		Tx: &utils.TransactionRequest{Sender: strPtr("alice"), Recipient: strPtr("bob"), Amount: &amount},
	})
	require.Nil(t, err)
	assert.Equal(t, int64(2), res.Index)
	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: amount},
	}, f.PendingTransactions())
}

func TestServerSetTransactionMissingValues(t *testing.T) {
	f := createTestNode(t)
	client := createTestClient(t, f)

	_, err := client.SetTransaction(context.Background(), &service.SetTransactionRequest{
		Tx: &utils.TransactionRequest{Sender: strPtr("alice"), Recipient: strPtr("bob")},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.SetTransaction(context.Background(), &service.SetTransactionRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	huge := model.Amount{Literal: "1e400"}
	_, err = client.SetTransaction(context.Background(), &service.SetTransactionRequest{
		Tx: &utils.TransactionRequest{Sender: strPtr("alice"), Recipient: strPtr("bob"), Amount: &huge},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Empty(t, f.PendingTransactions())
}

func TestServerMineAndGetChain(t *testing.T) {
	f := createTestNode(t)
	client := createTestClient(t, f)
	f.NewTransaction("alice", "bob", model.NewStringAmount("7"))

	res, err := client.Mine(context.Background(), &service.MineRequest{Recipient: "carol"})
	require.Nil(t, err)
	require.NotNil(t, res.Block)
	assert.Equal(t, int64(2), res.Block.Index)
	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: model.NewStringAmount("7")},
		{Sender: "0", Recipient: "carol", Amount: model.NewAmount(1)},
	}, res.Block.Transactions)

	chain, err := client.GetChain(context.Background(), &service.GetChainRequest{})
	require.Nil(t, err)
	assert.Equal(t, int64(2), chain.Length)
	assert.Equal(t, f.GetChain(), chain.Chain)
	assert.Equal(t, blockHash(t, &chain.Chain[0]), chain.Chain[1].PreviousHash)
}

func TestServerMineDeadline(t *testing.T) {
	c := createTestConfig()
	c.DIFFICULTY = 64
	f, err := NewFullNode(c, storage.NewMemoryStore())
	require.Nil(t, err)
	client := createTestClient(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = client.Mine(ctx, &service.MineRequest{})
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.Equal(t, int64(1), f.GetHeight())
}

func TestToStatusError(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, codes.Canceled, status.Code(toStatusError(canceled, utils.ErrMiningInterrupted)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatusError(context.Background(), utils.ErrMiningInterrupted)))
	assert.Equal(t, codes.Internal, status.Code(toStatusError(context.Background(), ErrPersistFailed)))
	assert.Equal(t, codes.FailedPrecondition, status.Code(toStatusError(context.Background(), ErrUnhashableBlock)))
}

func TestMineOnceAndStopMining(t *testing.T) {
	f := createTestNode(t)
	sev := NewFullNodeServer(f)

	b, err := sev.MineOnce(context.Background())
	require.Nil(t, err)
	assert.Equal(t, int64(2), b.Index)
	assert.Equal(t, f.GetNodeID(), b.Transactions[0].Recipient)

	c := createTestConfig()
	c.DIFFICULTY = 64
	hard, err := NewFullNode(c, storage.NewMemoryStore())
	require.Nil(t, err)
	sev = NewFullNodeServer(hard)
	done := make(chan error)
	go func() {
		_, err := sev.MineOnce(context.Background())
		done <- err
	}()
	// Keep stopping until the search has registered itself and returned.
	for {
		sev.StopMining()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, utils.ErrMiningInterrupted)
			assert.Equal(t, int64(1), hard.GetHeight())
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestMineLoop(t *testing.T) {
	f := createTestNode(t)
	sev := NewFullNodeServer(f)
	ctl := make(chan commands.Command)
	done := make(chan struct{})
	go func() {
		sev.MineLoop(ctl)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.GetHeight() >= 3 }, 5*time.Second, 10*time.Millisecond)
	ctl <- commands.Command{Op: commands.RESTART}
	ctl <- commands.Command{Op: commands.STOP}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("mining loop did not stop")
	}

	chain := f.GetChain()
	for i := 1; i < len(chain); i++ {
		assert.Equal(t, blockHash(t, &chain[i-1]), chain[i].PreviousHash)
		assert.True(t, utils.ValidProof(chain[i-1].Proof, chain[i].Proof, 1))
	}
}

func TestMineLoopStopsOnPersistFailure(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	f, err := NewFullNode(createTestConfig(), store)
	require.Nil(t, err)
	store.fail = true

	done := make(chan struct{})
	go func() {
		NewFullNodeServer(f).MineLoop(make(chan commands.Command))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("mining loop kept running")
	}
	assert.Equal(t, int64(1), f.GetHeight())
}
