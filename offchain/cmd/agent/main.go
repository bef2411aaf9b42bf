package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/math"
	"github.com/openrwa/rwa-chain/offchain/agent"
)

// Config holds the application configuration
type Config struct {
	BatchSize     int           `json:"batch_size"`
	BatchInterval time.Duration `json:"batch_interval"`
	WebSocketURL  string        `json:"websocket_url"`
	ChainRPCURL   string        `json:"chain_rpc_url"`
	SubmitterType string        `json:"submitter_type"` // "mock" or "batch"
	Demo          bool          `json:"demo"`           // run demo mode
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BatchSize:     50,
		BatchInterval: 2 * time.Second,
		WebSocketURL:  "ws://localhost:26657/websocket",
		ChainRPCURL:   "http://localhost:26657",
		SubmitterType: "mock",
		Demo:          false,
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	batchSize := flag.Int("batch-size", 0, "Maximum distributions per batch")
	batchInterval := flag.Duration("batch-interval", 0, "Time interval for batch submission")
	rpcURL := flag.String("rpc", "", "Chain RPC URL")
	wsURL := flag.String("ws", "", "WebSocket URL")
	submitterType := flag.String("submitter", "", "Submitter type (mock or batch)")
	demo := flag.Bool("demo", false, "Run demo mode with a sample pool")
	flag.Parse()

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Override with command line flags
	if *batchSize > 0 {
		config.BatchSize = *batchSize
	}
	if *batchInterval > 0 {
		config.BatchInterval = *batchInterval
	}
	if *rpcURL != "" {
		config.ChainRPCURL = *rpcURL
	}
	if *wsURL != "" {
		config.WebSocketURL = *wsURL
	}
	if *submitterType != "" {
		config.SubmitterType = *submitterType
	}
	if *demo {
		config.Demo = true
	}

	log.Println("=== RWA Settlement Agent ===")
	log.Printf("Batch Size: %d", config.BatchSize)
	log.Printf("Batch Interval: %v", config.BatchInterval)
	log.Printf("Chain RPC: %s", config.ChainRPCURL)
	log.Printf("WebSocket: %s", config.WebSocketURL)
	log.Printf("Submitter: %s", config.SubmitterType)
	log.Println("============================")

	factory := agent.NewSubmitterFactory()
	submitter := factory.Create(config.SubmitterType, &agent.BatchSubmitterConfig{
		RPCURL:        config.ChainRPCURL,
		BatchSize:     config.BatchSize,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	})

	agentConfig := &agent.Config{
		BatchSize:     config.BatchSize,
		BatchInterval: config.BatchInterval,
		WebSocketURL:  config.WebSocketURL,
		ChainRPCURL:   config.ChainRPCURL,
	}
	a := agent.NewSettlementAgent(agentConfig, submitter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx); err != nil {
		log.Fatalf("Failed to start agent: %v", err)
	}

	if config.Demo {
		go runDemo(a)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	statsTicker := time.NewTicker(10 * time.Second)
	defer statsTicker.Stop()

	log.Println("Agent is running. Press Ctrl+C to stop.")

	for {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
			if err := a.Stop(); err != nil {
				log.Printf("Error stopping agent: %v", err)
			}
			log.Println("Agent stopped")
			return
		case <-statsTicker.C:
			stats := a.GetStats()
			log.Printf("Stats: Pools=%d, PendingPools=%d, BufferedDistributions=%d",
				stats.PoolCount, stats.PendingDistribution, stats.BufferSize)
		}
	}
}

// runDemo registers a sample two-tranche pool and replays a payment
func runDemo(a *agent.SettlementAgent) {
	log.Println("Starting demo mode...")
	time.Sleep(time.Second)

	poolID := "pool-1"
	a.RegisterPool(&agent.PoolInfo{
		PoolID:       poolID,
		Manager:      "cosmos1manager",
		PaymentDenom: "uusdc",
		Tranches: []agent.TrancheTarget{
			{TrancheID: "trn-senior", Class: "senior", Rank: 0, Principal: math.NewInt(7000), YieldBps: 800},
			{TrancheID: "trn-junior", Class: "junior", Rank: 1, Principal: math.NewInt(3000), YieldBps: 1500},
		},
	})

	log.Printf("Registered pool %s (senior 7000 @ 8%%, junior 3000 @ 15%%)", poolID)

	// A full payoff of the receivables batch
	log.Println("\n=== Recording payment of 10300 ===")
	a.RecordPayment(poolID, math.NewInt(10300), 1)
	time.Sleep(500 * time.Millisecond)

	printPreview(poolID, math.NewInt(10300))

	// A short payment in the next epoch, the junior tranche absorbs the loss
	log.Println("\n=== Recording short payment of 8000 ===")
	a.RecordPayment(poolID, math.NewInt(8000), 2)
	time.Sleep(500 * time.Millisecond)

	printPreview(poolID, math.NewInt(8000))

	log.Println("\nDemo completed!")
}

// printPreview prints the waterfall allocation for a payment
func printPreview(poolID string, payment math.Int) {
	targets := []agent.TrancheTarget{
		{TrancheID: "trn-senior", Class: "senior", Rank: 0, Principal: math.NewInt(7000), YieldBps: 800},
		{TrancheID: "trn-junior", Class: "junior", Rank: 1, Principal: math.NewInt(3000), YieldBps: 1500},
	}

	allocations := agent.PreviewWaterfall(targets, payment)
	log.Printf("Waterfall for %s, payment %s:", poolID, payment.String())
	log.Printf("  senior: %s", allocations["senior"].String())
	log.Printf("  junior: %s", allocations["junior"].String())
}
