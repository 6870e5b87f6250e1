package full_node

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/gorilla/mux"
)

// Browser page driving the JSON API.
//
//go:embed static
var staticFiles embed.FS

// HTTPServer serves the JSON API of a full node and its browser page.
type HTTPServer struct {
	fullNode *FullNode
	router   *mux.Router
	server   *http.Server
}

type mineResponse struct {
	Message      string              `json:"message"`
	Index        int64               `json:"index"`
	PreviousHash string              `json:"previous_hash"`
	Proof        int64               `json:"proof"`
	Transactions []model.Transaction `json:"transactions"`
}

type chainResponse struct {
	Chain  []model.Block `json:"chain"`
	Length int           `json:"length"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewHTTPServer(f *FullNode, addr string) *HTTPServer {
	s := &HTTPServer{
		fullNode: f,
		router:   mux.NewRouter(),
	}
	s.registerRoutes()
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 10 * time.Second,
	}
	return s
}

func (s *HTTPServer) registerRoutes() {
	s.router.HandleFunc("/mine", s.mineHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/chain", s.chainHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions/new", s.newTransactionHandler).Methods(http.MethodPost)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Panicln(err)
	}
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		log.Panicln(err)
	}
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(index)
	}).Methods(http.MethodGet)
	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is shut down.
func (s *HTTPServer) ListenAndServe() error {
	log.Println("Starting HTTP API at", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) mineHandler(w http.ResponseWriter, r *http.Request) {
	block, err := s.fullNode.Mine(r.Context(), "")
	if err != nil {
		log.Printf("Mining failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, mineResponse{
		Message:      "New Block Forged",
		Index:        block.Index,
		PreviousHash: block.PreviousHash,
		Proof:        block.Proof,
		Transactions: block.Transactions,
	})
}

func (s *HTTPServer) chainHandler(w http.ResponseWriter, r *http.Request) {
	chain := s.fullNode.GetChain()
	writeJSON(w, http.StatusOK, chainResponse{
		Chain:  chain,
		Length: len(chain),
	})
}

func (s *HTTPServer) newTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req utils.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode transaction: %v", err)
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	tx, err := req.ToTransaction()
	if errors.Is(err, utils.ErrMissingValues) {
		http.Error(w, "Missing values", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	index := s.fullNode.AddTransactionToPool(tx)
	writeJSON(w, http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
