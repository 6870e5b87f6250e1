package visualize

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os/exec"
	"path/filepath"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/bradleyjkemp/memviz"
)

// We need to re-define the visualize model here because the json tags and the full hashes are
// extra information we don't really care about in a picture.
type transaction struct {
	sender    string
	recipient string
	amount    string
}

type block struct {
	index        int64
	previousHash string
	proof        int64
	transactions []transaction
	next         *block
}

// The string of hashes and node ids is just too long to render, instead we take only first 3 and
// last 3 characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as
// "abc...ghi"
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func blockToBlock(b *model.Block) *block {
	n := &block{
		index:        b.Index,
		previousHash: shortenString(b.PreviousHash),
		proof:        b.Proof,
	}
	for i := 0; i < len(b.Transactions); i++ {
		tx := b.Transactions[i]
		n.transactions = append(n.transactions, transaction{
			sender:    shortenString(tx.Sender),
			recipient: shortenString(tx.Recipient),
			amount:    tx.Amount.String(),
		})
	}
	return n
}

// Given the chain, link its last d blocks, oldest first. d <= 0 keeps the whole chain.
func constructData(blocks []model.Block, d int) *block {
	start := 0
	if d > 0 && d < len(blocks) {
		start = len(blocks) - d
	}
	var head, prev *block
	for i := start; i < len(blocks); i++ {
		n := blockToBlock(&blocks[i])
		if prev == nil {
			head = n
		} else {
			prev.next = n
		}
		prev = n
	}
	return head
}

// WriteDot writes the graphviz description of the last d blocks to w.
func WriteDot(w io.Writer, blocks []model.Block, d int) {
	chain := constructData(blocks, d)
	memviz.Map(w, chain)
}

// Entry to this package, where:
// blocks: the entire blockchain as tracked by full node.
// d: how many of the last blocks to render.
// id: unique id of the full node.
// The dot file is always written, the png only when graphviz is installed.
func Render(blocks []model.Block, d int, id string) error {
	buf := &bytes.Buffer{}
	WriteDot(buf, blocks, d)

	// Write the parsed data to disk
	fileName := filepath.Join("/tmp", "chaindata-"+id)
	outputName := filepath.Join("/tmp", "rendered-chain-"+id+".png")
	err := ioutil.WriteFile(fileName, buf.Bytes(), 0644)
	if err != nil {
		return err
	}

	cmd := exec.Command("dot", "-Tpng", fileName, "-o", outputName)
	if err := cmd.Run(); err != nil {
		log.Println("graphviz is not available, chain graph left in", fileName)
		return nil
	}
	log.Println("Rendered chain to", outputName)
	return nil
}
