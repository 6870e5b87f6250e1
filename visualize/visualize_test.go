package visualize

import (
	"bytes"
	"testing"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
)

func createTestChain(n int) []model.Block {
	blocks := []model.Block{model.NewGenesisBlock(1)}
	for i := 2; i <= n; i++ {
		blocks = append(blocks, model.Block{
			Index:        int64(i),
			Transactions: []model.Transaction{{Sender: "0", Recipient: "c070a4ae77fa41928efadd9a12fc2ed4", Amount: model.NewAmount(1)}},
			Proof:        int64(i * 10),
			PreviousHash: "7dd0b05c7a6aafba30a3d6c7102d235385a934972e4c066bcea9f6adcbae98f2",
		})
	}
	return blocks
}

func TestShortenString(t *testing.T) {
	assert.Equal(t, "abcdefgh", shortenString("abcdefgh"))
	assert.Equal(t, "abc...ghi", shortenString("abcdefghi"))
}

func TestConstructData(t *testing.T) {
	blocks := createTestChain(5)

	head := constructData(blocks, 2)
	assert.Equal(t, int64(4), head.index)
	assert.Equal(t, int64(5), head.next.index)
	assert.Nil(t, head.next.next)
	assert.Equal(t, "7dd...8f2", head.previousHash)
	assert.Equal(t, "c07...ed4", head.transactions[0].recipient)

	all := constructData(blocks, 0)
	assert.Equal(t, int64(1), all.index)
	assert.Equal(t, all, constructData(blocks, 10))
	assert.Nil(t, constructData(nil, 3))
}

func TestWriteDot(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteDot(buf, createTestChain(3), 2)
	assert.Contains(t, buf.String(), "digraph")
}
