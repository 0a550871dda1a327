package httpserver

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mselser95/krakenmd/internal/orderbook"
)

// ErrorResponse is the JSON body returned for any non-2xx response from
// this package's handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// orderbookResponse is the JSON shape served by GET /api/orderbook.
type orderbookResponse struct {
	Symbol   string            `json:"symbol"`
	Bids     []orderbook.Level `json:"bids"`
	Asks     []orderbook.Level `json:"asks"`
	Valid    bool              `json:"checksum_valid"`
	Sequence uint64            `json:"sequence"`
}

const defaultOrderbookHandlerDepth = 10

// orderbookHandler serves a point-in-time snapshot of one symbol's
// replicated order book out of a orderbook.Store.
type orderbookHandler struct {
	books  *orderbook.Store
	logger *zap.Logger
}

func newOrderbookHandler(books *orderbook.Store, logger *zap.Logger) *orderbookHandler {
	return &orderbookHandler{books: books, logger: logger}
}

func (h *orderbookHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}

	book, ok := h.books.Get(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "no order book snapshot for symbol "+symbol)
		return
	}

	resp := orderbookResponse{
		Symbol:   book.Symbol,
		Bids:     book.TopBids(defaultOrderbookHandlerDepth),
		Asks:     book.TopAsks(defaultOrderbookHandlerDepth),
		Valid:    book.ChecksumValid,
		Sequence: book.Sequence,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Warn("encode orderbook response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
