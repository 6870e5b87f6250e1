package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/layout"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/jroimartin/gocui"
)

var (
	debugMode   *bool
	manualPath  *string
	mineTimeout *int
)

func init() {
	debugMode = flag.Bool("debug_mode", false, "Using debug mode will disable fancy GUI.")
	manualPath = flag.String("manual_path", "wallet/cmd/usage.txt", "usage file shown by the GUI")
	mineTimeout = flag.Int("mine_timeout", 600, "seconds to wait for a remote mine")
}

// Return a gui handle if not in debug mode.
func ListenOnInput(cmd chan commands.ClientCommand, debugMode bool) *gocui.Gui {
	if debugMode {
		go ParseCommand(cmd)
		return nil
	}
	g, err := layout.CreateGui(cmd, *manualPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.SetOutput(layout.LogWriter(g))
	go func() {
		if err := g.MainLoop(); err != nil {
			g.Close()
			if err == gocui.ErrQuit {
				os.Exit(0)
			}
			os.Exit(1)
		}
	}()
	return g
}

func main() {
	flag.Parse()

	cmd := make(chan commands.ClientCommand)
	ListenOnInput(cmd, *debugMode)
	w := wallet.NewWallet()
	w.MineTimeout = time.Duration(*mineTimeout) * time.Second
	defer w.Close()

	HandleCommand(cmd, w)
}

// Parse command from stdio.
func ParseCommand(cmd chan commands.ClientCommand) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			close(cmd)
			return
		}
		text = strings.TrimSpace(text)
		c, err := commands.CreateClientCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

func HandleCommand(cmd chan commands.ClientCommand, w *wallet.Wallet) {
	for c := range cmd {
		switch c.Op {
		case commands.SEND:
			sender, recipient := c.Args[0], c.Args[1]
			index, err := w.SendTransaction(sender, recipient, model.ParseAmount(c.Args[2]))
			if err != nil {
				w.Log("fail to send transaction: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("Transaction will be added to Block %d", index))
		case commands.REMOTE_MINE:
			recipient := ""
			if len(c.Args) == 1 {
				recipient = c.Args[0]
			}
			b, err := w.Mine(recipient)
			if err != nil {
				w.Log("fail to mine: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("New Block Forged: index %d, proof %d, %d transactions", b.Index, b.Proof, len(b.Transactions)))
		case commands.CONNECT:
			ipAddr := c.Args[0]
			port := c.Args[1]
			if err := w.SetFullNodeConnection(ipAddr, port); err != nil {
				w.Log("failed to connect to full node endpoint " + ipAddr + ":" + port)
				continue
			}
			w.Log("connected full node endpoint " + ipAddr + ":" + port)
		case commands.GET_CHAIN:
			chain, err := w.GetChain()
			if err != nil {
				w.Log("fail to get chain: " + err.Error())
				continue
			}
			dat, _ := json.MarshalIndent(chain, "", "    ")
			w.Log(fmt.Sprintf("chain of length %d\n%s", len(chain), dat))
		default:
			w.Log(fmt.Sprintf("Unimplemented command: %d", c.Op))
		}
	}
}
