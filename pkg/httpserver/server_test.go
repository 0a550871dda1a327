package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mselser95/krakenmd/internal/orderbook"
	"github.com/mselser95/krakenmd/pkg/healthprobe"
	"github.com/mselser95/krakenmd/pkg/types"
)

func TestNew(t *testing.T) {
	logger := zap.NewNop()
	healthChecker := healthprobe.New()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "valid_config_minimal",
			cfg:  &Config{Port: "8080", Logger: logger, HealthChecker: healthChecker},
		},
		{
			name: "valid_config_with_books",
			cfg:  &Config{Port: "8080", Logger: logger, HealthChecker: healthChecker, Books: orderbook.NewStore(logger)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(tt.cfg)
			if server == nil {
				t.Fatal("New() returned nil server")
			}
			if server.server == nil {
				t.Error("New() server.server is nil")
			}
			if server.logger != tt.cfg.Logger {
				t.Error("New() logger not set correctly")
			}
			if server.healthChecker != tt.cfg.HealthChecker {
				t.Error("New() healthChecker not set correctly")
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Health endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		setReady       bool
		expectedStatus int
	}{
		{name: "ready_when_set", setReady: true, expectedStatus: http.StatusOK},
		{name: "not_ready_initially", setReady: false, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := healthprobe.New()
			if tt.setReady {
				hc.SetReady(true)
			}

			server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: hc})

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()
			server.server.Handler.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Ready endpoint status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Metrics endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Header.Get("Content-Type") == "" {
		t.Error("Metrics endpoint missing Content-Type header")
	}
}

func seedBook(t *testing.T, logger *zap.Logger) *orderbook.Store {
	t.Helper()
	store := orderbook.NewStore(logger)
	store.ApplySnapshot(types.OrderbookDelta{
		Symbol: "BTC/USD",
		Bids:   []types.PriceLevel{{Price: 100, Qty: 1}},
		Asks:   []types.PriceLevel{{Price: 101, Qty: 2}},
	})
	return store
}

func TestOrderbookEndpoint_ReturnsSnapshot(t *testing.T) {
	logger := zap.NewNop()
	server := New(&Config{Port: "0", Logger: logger, HealthChecker: healthprobe.New(), Books: seedBook(t, logger)})

	req := httptest.NewRequest(http.MethodGet, "/api/orderbook?symbol=BTC/USD", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body orderbookResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Bids) != 1 || body.Bids[0].Price != 100 {
		t.Errorf("unexpected bids: %+v", body.Bids)
	}
}

func TestOrderbookEndpoint_UnknownSymbolNotFound(t *testing.T) {
	logger := zap.NewNop()
	server := New(&Config{Port: "0", Logger: logger, HealthChecker: healthprobe.New(), Books: orderbook.NewStore(logger)})

	req := httptest.NewRequest(http.MethodGet, "/api/orderbook?symbol=ETH/USD", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestOrderbookEndpoint_MissingSymbol(t *testing.T) {
	logger := zap.NewNop()
	server := New(&Config{Port: "0", Logger: logger, HealthChecker: healthprobe.New(), Books: orderbook.NewStore(logger)})

	req := httptest.NewRequest(http.MethodGet, "/api/orderbook", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestOrderbookEndpoint_MethodNotAllowed(t *testing.T) {
	logger := zap.NewNop()
	server := New(&Config{Port: "0", Logger: logger, HealthChecker: healthprobe.New(), Books: orderbook.NewStore(logger)})

	req := httptest.NewRequest(http.MethodPost, "/api/orderbook?symbol=BTC/USD", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestOrderbookEndpoint_AbsentWithoutBooksConfigured(t *testing.T) {
	server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	req := httptest.NewRequest(http.MethodGet, "/api/orderbook?symbol=BTC/USD", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d (route should not be registered)", resp.StatusCode, http.StatusNotFound)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start()
	}()

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-serverDone:
		if err != nil {
			t.Errorf("Start() returned error after shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after shutdown")
	}
}

func TestServer_Timeouts(t *testing.T) {
	server := New(&Config{Port: "8080", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	if server.server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want %v", server.server.ReadTimeout, 15*time.Second)
	}
	if server.server.ReadHeaderTimeout != 10*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want %v", server.server.ReadHeaderTimeout, 10*time.Second)
	}
	if server.server.WriteTimeout != 15*time.Second {
		t.Errorf("WriteTimeout = %v, want %v", server.server.WriteTimeout, 15*time.Second)
	}
	if server.server.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want %v", server.server.IdleTimeout, 60*time.Second)
	}
}

func TestServer_RouteNotFound(t *testing.T) {
	server := New(&Config{Port: "0", Logger: zap.NewNop(), HealthChecker: healthprobe.New()})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
