package full_node

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FullNodeServer exposes a FullNode over gRPC and drives the mining loop of the console.
type FullNodeServer struct {
	fullNode *FullNode

	// Cancels the proof search in flight, if any.
	cancelMining context.CancelFunc
	cm           sync.Mutex
}

func NewFullNodeServer(f *FullNode) *FullNodeServer {
	return &FullNodeServer{
		fullNode: f,
	}
}

func (sev *FullNodeServer) FullNode() *FullNode {
	return sev.fullNode
}

// SetTransaction adds the transaction to the pending pool.
func (sev *FullNodeServer) SetTransaction(ctx context.Context, req *service.SetTransactionRequest) (*service.SetTransactionResponse, error) {
	tx, err := req.Tx.ToTransaction()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	index := sev.fullNode.AddTransactionToPool(tx)
	return &service.SetTransactionResponse{Index: index}, nil
}

// Mine forges one block. Canceling the call stops the proof search.
func (sev *FullNodeServer) Mine(ctx context.Context, req *service.MineRequest) (*service.MineResponse, error) {
	b, err := sev.fullNode.Mine(ctx, req.Recipient)
	if err != nil {
		return nil, toStatusError(ctx, err)
	}
	return &service.MineResponse{Block: b}, nil
}

func (sev *FullNodeServer) GetChain(ctx context.Context, req *service.GetChainRequest) (*service.GetChainResponse, error) {
	chain := sev.fullNode.GetChain()
	return &service.GetChainResponse{
		Chain:  chain,
		Length: int64(len(chain)),
	}, nil
}

func toStatusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, utils.ErrMiningInterrupted):
		if errors.Is(ctx.Err(), context.Canceled) {
			return status.Error(codes.Canceled, err.Error())
		}
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, ErrPersistFailed):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, ErrUnhashableBlock):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

// MineOnce forges one block for the node itself. The search can be stopped with StopMining or by
// canceling parent.
func (sev *FullNodeServer) MineOnce(parent context.Context) (*model.Block, error) {
	ctx, cancel := context.WithCancel(parent)
	sev.cm.Lock()
	sev.cancelMining = cancel
	sev.cm.Unlock()
	defer func() {
		sev.cm.Lock()
		sev.cancelMining = nil
		sev.cm.Unlock()
		cancel()
	}()
	return sev.fullNode.Mine(ctx, "")
}

// StopMining interrupts the proof search started by MineOnce, if any.
func (sev *FullNodeServer) StopMining() {
	sev.cm.Lock()
	defer sev.cm.Unlock()
	if sev.cancelMining != nil {
		sev.cancelMining()
	}
}

// MineLoop mines blocks back to back until ctl receives STOP. A RESTART only abandons the current
// proof search.
func (sev *FullNodeServer) MineLoop(ctl chan commands.Command) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() {
		for {
			select {
			case c := <-ctl:
				if c.Op == commands.STOP {
					stop()
					return
				}
				sev.StopMining()
			case <-ctx.Done():
				return
			}
		}
	}()

	for ctx.Err() == nil {
		b, err := sev.MineOnce(ctx)
		// Retrying cannot help with either.
		if errors.Is(err, ErrPersistFailed) || errors.Is(err, ErrUnhashableBlock) {
			log.Println("stop mining:", err)
			return
		}
		if err != nil {
			log.Println(err)
			continue
		}
		log.Printf("Mined block %d, previous hash %s", b.Index, b.PreviousHash)
	}
}

// Show renders the last d blocks.
func (sev *FullNodeServer) Show(d int) error {
	return visualize.Render(sev.fullNode.GetChain(), d, sev.fullNode.GetNodeID())
}
