package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openrwa/rwa-chain/api"
)

func main() {
	host := flag.String("host", "0.0.0.0", "Server host")
	port := flag.Int("port", 8080, "Server port")
	mockMode := flag.Bool("mock", false, "Serve the built-in sample data set")
	benchMode := flag.Bool("bench", false, "Enable benchmark mode (no rate limiting)")
	flag.Parse()

	config := &api.Config{
		Host:                  *host,
		Port:                  *port,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		MockMode:              *mockMode,
		DisableRateLimit:      *benchMode,
		PoolBroadcastInterval: 2 * time.Second,
	}

	if *benchMode {
		log.Println("Benchmark mode: rate limiting disabled")
	}

	server := api.NewServer(config)

	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("RWA pool API started on %s:%d", *host, *port)
	log.Printf("Mock mode: %v", *mockMode)
	log.Printf("WebSocket endpoint: ws://%s:%d/ws", *host, *port)
	log.Printf("Health check: http://%s:%d/health", *host, *port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server exited")
}
