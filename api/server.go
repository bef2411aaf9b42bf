package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/openrwa/rwa-chain/api/handlers"
	"github.com/openrwa/rwa-chain/api/middleware"
	"github.com/openrwa/rwa-chain/api/types"
	"github.com/openrwa/rwa-chain/api/websocket"
	"github.com/openrwa/rwa-chain/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config
	mockMode   bool

	// Services
	poolService       types.PoolService
	marketService     types.MarketService
	registryService   types.RegistryService
	settlementService types.SettlementService

	// Handlers
	poolHandler     *handlers.PoolHandler
	registryHandler *handlers.RegistryHandler

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // For testing purposes

	// How often buffered pool value snapshots are pushed to subscribers
	PoolBroadcastInterval time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:                  "0.0.0.0",
		Port:                  8080,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		MockMode:              false,
		PoolBroadcastInterval: 2 * time.Second,
	}
}

// NewServer creates a new API server backed by the in-memory mock service
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	mockService := NewMockService()
	return newServer(config, mockService, mockService, mockService, mockService)
}

// NewServerWithServices creates a new API server with custom service
// implementations, e.g. services bound to a running chain.
func NewServerWithServices(config *Config, pools types.PoolService, market types.MarketService, registry types.RegistryService, settlements types.SettlementService) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return newServer(config, pools, market, registry, settlements)
}

func newServer(config *Config, pools types.PoolService, market types.MarketService, registry types.RegistryService, settlements types.SettlementService) *Server {
	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	s := &Server{
		config:            config,
		wsServer:          websocket.NewServer(wsConfig),
		mockMode:          config.MockMode,
		poolService:       pools,
		marketService:     market,
		registryService:   registry,
		settlementService: settlements,
		rateLimiter:       middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
	}

	s.poolHandler = handlers.NewPoolHandler(s.poolService, s.marketService, s.settlementService)
	s.registryHandler = handlers.NewRegistryHandler(s.registryService)

	return s
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Pool endpoints (read-only)
	mux.HandleFunc("/v1/pools", s.poolHandler.HandlePools)
	mux.HandleFunc("/v1/pools/", s.poolHandler.HandlePoolRoutes)

	// Secondary market listings
	mux.HandleFunc("/v1/listings/", s.poolHandler.HandleListingRoutes)

	// Asset registry
	mux.HandleFunc("/v1/assets", s.registryHandler.HandleAssets)
	mux.HandleFunc("/v1/assets/", s.registryHandler.HandleAssetRoutes)

	// Investor positions
	mux.HandleFunc("/v1/user/", s.poolHandler.HandleUserRoutes)

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain: CORS -> RateLimit -> Instrumentation -> Handler
	var handler http.Handler = instrumentHandler(mux)
	if !s.config.DisableRateLimit {
		handler = middleware.RateLimitMiddleware(s.rateLimiter)(handler)
	}
	handler = corsMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub and the pool value broadcaster
	go s.wsServer.GetHub().Run()
	go s.startPoolBroadcaster()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetWSServer returns the WebSocket server for event broadcasting
func (s *Server) GetWSServer() *websocket.Server {
	return s.wsServer
}

// startPoolBroadcaster periodically snapshots every pool and pushes the
// values into the hub's buffer. Subscribers on pool:<id> channels receive
// the latest snapshot on the hub's flush tick.
func (s *Server) startPoolBroadcaster() {
	interval := s.config.PoolBroadcastInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		pools, err := s.poolService.GetPools()
		if err != nil {
			continue
		}
		for _, pool := range pools {
			s.wsServer.BroadcastPoolValue(&websocket.PoolValueMessage{
				PoolID:        pool.PoolID,
				Phase:         pool.Phase,
				TotalValue:    pool.TotalValue,
				TotalShares:   pool.TotalShares,
				TotalInvested: pool.TotalInvested,
				SharePrice:    sharePrice(pool.TotalValue, pool.TotalShares),
				Timestamp:     time.Now().UnixMilli(),
			})
		}
	}
}

// sharePrice computes value/shares as a decimal string. Falls back to "0"
// when the pool has no shares outstanding.
func sharePrice(totalValue, totalShares string) string {
	var value, shares float64
	if _, err := fmt.Sscanf(totalValue, "%f", &value); err != nil {
		return "0"
	}
	if _, err := fmt.Sscanf(totalShares, "%f", &shares); err != nil || shares == 0 {
		return "0"
	}
	return fmt.Sprintf("%.6f", value/shares)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "chain"
	if s.mockMode {
		mode = "mock"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"mode":      mode,
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// instrumentHandler records request counts and latency per method and path
func instrumentHandler(next http.Handler) http.Handler {
	collector := metrics.GetCollector()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		timer := metrics.NewTimer()

		next.ServeHTTP(recorder, r)

		collector.RecordAPIRequest(r.Method, r.URL.Path, fmt.Sprintf("%d", recorder.status), timer.ElapsedMs())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
