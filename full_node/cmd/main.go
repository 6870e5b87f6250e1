package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/layout"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/Luismorlan/ledger_in_go/storage"
	"github.com/jroimartin/gocui"
	"google.golang.org/grpc"
)

var (
	port       *string
	httpPort   *string
	configPath *string
	manualPath *string
	debugMode  *bool
)

func init() {
	port = flag.String("port", "", "gRPC port for wallets, overrides grpc_port of the config")
	httpPort = flag.String("http_port", "", "HTTP API port, overrides http_port of the config")
	configPath = flag.String("config_path", "full_node/cmd/config.yaml", "path to full node config")
	manualPath = flag.String("manual_path", "full_node/cmd/usage.txt", "usage file shown by the GUI")
	debugMode = flag.Bool("debug_mode", false, "Using debug mode will disable fancy GUI.")
}

func ParseCommand(cmd chan commands.Command) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		c, err := commands.CreateCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

// Return a gui handle if not in debug mode.
func ListenOnInput(cmd chan commands.Command, debugMode bool) *gocui.Gui {
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

// HandleCommand runs console commands against the node. Continuous mining runs in its own
// goroutine and is steered through ctl.
func HandleCommand(cmd chan commands.Command, server *full_node.FullNodeServer) {
	f := server.FullNode()
	// A separate control is needed to make sure cmd is non-blocking
	// when we just want to restart task.
	var ctl chan commands.Command
	var stopped chan struct{}
	for c := range cmd {
		switch c.Op {
		case commands.START:
			if ctl != nil {
				select {
				case <-stopped:
					// The loop gave up on its own.
				default:
					log.Println("mining has already been started")
					continue
				}
			}
			ctl = make(chan commands.Command)
			stopped = make(chan struct{})
			go func(ctl chan commands.Command, stopped chan struct{}) {
				server.MineLoop(ctl)
				close(stopped)
			}(ctl, stopped)
		case commands.RESTART, commands.STOP:
			if ctl == nil {
				log.Println("no running mining task to be restarted or stopped")
				continue
			}
			select {
			case ctl <- c:
			case <-stopped:
			}
			if c.Op == commands.STOP {
				ctl = nil
			}
		case commands.MINE:
			go func() {
				b, err := server.MineOnce(context.Background())
				if err != nil {
					log.Println("failed to mine:", err)
					return
				}
				log.Printf("New Block Forged: index %d, proof %d, previous hash %s", b.Index, b.Proof, b.PreviousHash)
			}()
		case commands.TX:
			index := f.NewTransaction(c.Args[0], c.Args[1], model.ParseAmount(c.Args[2]))
			log.Printf("Transaction will be added to Block %d", index)
		case commands.CHAIN:
			chain := f.GetChain()
			dat, _ := json.MarshalIndent(chain, "", "    ")
			log.Printf("chain of length %d\n%s", len(chain), dat)
		case commands.PENDING:
			dat, _ := json.MarshalIndent(f.PendingTransactions(), "", "    ")
			log.Printf("pending transactions\n%s", dat)
		case commands.SHOW:
			d, _ := strconv.Atoi(c.Args[0])
			if err := server.Show(d); err != nil {
				log.Println("failed to show chain:", err)
			}
		default:
			log.Println("Unrecognized command:", c)
		}
	}
}

// Read the config file, running on defaults when there is none.
func loadConfig(path string) config.AppConfig {
	cfg, err := config.ParseAppConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no config at %s, using defaults", path)
		return config.Default()
	}
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func main() {
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *port != "" {
		cfg.GRPC_PORT = *port
	}
	if *httpPort != "" {
		cfg.HTTP_PORT = *httpPort
	}

	store, err := storage.NewChainStore(storage.Kind(cfg.STORAGE), cfg.CHAIN_FILE)
	if err != nil {
		log.Fatalf("failed to open %s storage at %s: %v", cfg.STORAGE, cfg.CHAIN_FILE, err)
	}
	f, err := full_node.NewFullNode(cfg, store)
	if err != nil {
		log.Fatalf("failed to start full node: %v", err)
	}
	defer f.Close()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPC_PORT))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	cmd := make(chan commands.Command)
	ListenOnInput(cmd, *debugMode)

	server := full_node.NewFullNodeServer(f)
	grpcServer := grpc.NewServer()
	service.RegisterLedgerServiceServer(grpcServer, server)
	log.Printf("node %s, difficulty %d, storage %s", f.GetNodeID(), cfg.DIFFICULTY, cfg.STORAGE)

	httpServer := full_node.NewHTTPServer(f, fmt.Sprintf(":%s", cfg.HTTP_PORT))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	go HandleCommand(cmd, server)

	log.Println("Starting to serve at port:", cfg.GRPC_PORT)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("grpc server: %v", err)
	}
}
