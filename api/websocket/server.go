package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/openrwa/rwa-chain/metrics"
)

// Server wraps a Hub with per-IP connection limits and standalone HTTP
// serving. The API gateway mounts the hub directly; Start is for running
// the feed as its own process.
type Server struct {
	hub        *Hub
	httpServer *http.Server
	config     *ServerConfig

	connections      map[string]*Client
	connectionsMu    sync.RWMutex
	connectionsPerIP map[string]int
	ipMu             sync.Mutex

	totalConnections  atomic.Int64
	activeConnections atomic.Int64

	shutdownCh chan struct{}
}

// ServerConfig contains server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	AllowedOrigins []string
	MaxConnPerIP   int

	TLSCertFile string
	TLSKeyFile  string

	HubConfig *HubConfig
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		AllowedOrigins: []string{"*"},
		MaxConnPerIP:   10,
		HubConfig:      DefaultHubConfig(),
	}
}

// NewServer creates a new WebSocket server
func NewServer(config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	return &Server{
		hub:              NewHub(config.HubConfig),
		config:           config,
		connections:      make(map[string]*Client),
		connectionsPerIP: make(map[string]int),
		shutdownCh:       make(chan struct{}),
	}
}

// Start runs the hub and serves /ws on its own listener
func (s *Server) Start() error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	log.Printf("WebSocket server starting on %s", addr)

	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		return s.httpServer.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	close(s.shutdownCh)
	return s.httpServer.Shutdown(ctx)
}

// handleWebSocket upgrades the connection and starts the client pumps
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := getClientIP(r)

	if !s.checkIPLimit(ip) {
		http.Error(w, "Too many connections from this IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	// An investor address in the query pre-identifies the client, the same
	// binding the "identify" action establishes later
	investor := r.URL.Query().Get("investor")
	client := NewClient(s.hub, conn, uuid.New().String(), investor, ip)

	s.registerConnection(client)

	go client.writePump()
	go client.readPump()

	s.totalConnections.Add(1)
	s.activeConnections.Add(1)
	metrics.GetCollector().RecordWSConnection(1)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// handleStats reports connection and channel counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"total_connections":  s.totalConnections.Load(),
		"active_connections": s.activeConnections.Load(),
		"channels":           s.hub.GetChannelCount(),
	})
}

func (s *Server) registerConnection(client *Client) {
	s.connectionsMu.Lock()
	s.connections[client.GetID()] = client
	s.connectionsMu.Unlock()

	s.ipMu.Lock()
	s.connectionsPerIP[client.GetIP()]++
	s.ipMu.Unlock()

	s.hub.register <- client
}

// ReleaseConnection drops a client from the per-IP accounting once its
// read pump has unregistered from the hub.
func (s *Server) ReleaseConnection(client *Client) {
	s.connectionsMu.Lock()
	delete(s.connections, client.GetID())
	s.connectionsMu.Unlock()

	s.ipMu.Lock()
	s.connectionsPerIP[client.GetIP()]--
	if s.connectionsPerIP[client.GetIP()] <= 0 {
		delete(s.connectionsPerIP, client.GetIP())
	}
	s.ipMu.Unlock()

	s.activeConnections.Add(-1)
	metrics.GetCollector().RecordWSConnection(-1)
}

func (s *Server) checkIPLimit(ip string) bool {
	s.ipMu.Lock()
	defer s.ipMu.Unlock()
	return s.connectionsPerIP[ip] < s.config.MaxConnPerIP
}

// GetHub returns the hub
func (s *Server) GetHub() *Hub {
	return s.hub
}

// GetConnection returns a client by ID
func (s *Server) GetConnection(clientID string) *Client {
	s.connectionsMu.RLock()
	defer s.connectionsMu.RUnlock()
	return s.connections[clientID]
}

// GetActiveConnections returns the number of active connections
func (s *Server) GetActiveConnections() int64 {
	return s.activeConnections.Load()
}

// BroadcastPoolValue buffers a pool value snapshot for the next flush
func (s *Server) BroadcastPoolValue(value *PoolValueMessage) {
	s.hub.UpdatePoolValue(value.PoolID, value)
}

// BroadcastListing broadcasts a listing event
func (s *Server) BroadcastListing(listing *ListingMessage) {
	s.hub.BroadcastListing(listing.Scope, listing)
}

// BroadcastTrade broadcasts a share trade
func (s *Server) BroadcastTrade(trade *TradeMessage) {
	s.hub.BroadcastTrade(trade.Scope, trade)
}

// BroadcastSettlement broadcasts a settlement event
func (s *Server) BroadcastSettlement(settlement *SettlementMessage) {
	s.hub.BroadcastSettlement(settlement.PoolID, settlement)
}

// BroadcastPosition broadcasts a position update to an investor
func (s *Server) BroadcastPosition(investor string, position *PositionMessage) {
	s.hub.BroadcastPosition(investor, position)
}

// getClientIP resolves the originating IP, honoring proxy headers
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
