package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// LatencyRecord records latency for each request
type LatencyRecord struct {
	Kind      string
	Latency   time.Duration
	Timestamp time.Time
}

// BenchmarkResults holds all test results
type BenchmarkResults struct {
	PoolReads        int64
	ListingReads     int64
	PoolSuccess      int64
	ListingSuccess   int64
	PoolFailed       int64
	ListingFailed    int64
	PoolLatencies    []time.Duration
	ListingLatencies []time.Duration
	mu               sync.Mutex
}

func (r *BenchmarkResults) AddPoolRead(latency time.Duration, success bool) {
	atomic.AddInt64(&r.PoolReads, 1)
	if success {
		atomic.AddInt64(&r.PoolSuccess, 1)
	} else {
		atomic.AddInt64(&r.PoolFailed, 1)
	}
	r.mu.Lock()
	r.PoolLatencies = append(r.PoolLatencies, latency)
	r.mu.Unlock()
}

func (r *BenchmarkResults) AddListingRead(latency time.Duration, success bool) {
	atomic.AddInt64(&r.ListingReads, 1)
	if success {
		atomic.AddInt64(&r.ListingSuccess, 1)
	} else {
		atomic.AddInt64(&r.ListingFailed, 1)
	}
	r.mu.Lock()
	r.ListingLatencies = append(r.ListingLatencies, latency)
	r.mu.Unlock()
}

func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func avg(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, l := range latencies {
		total += l
	}
	return total / time.Duration(len(latencies))
}

func minLatency(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	m := latencies[0]
	for _, l := range latencies {
		if l < m {
			m = l
		}
	}
	return m
}

func maxLatency(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	m := latencies[0]
	for _, l := range latencies {
		if l > m {
			m = l
		}
	}
	return m
}

func get(client *http.Client, url string) (time.Duration, bool) {
	start := time.Now()

	resp, err := client.Get(url)
	latency := time.Since(start)
	if err != nil {
		return latency, false
	}
	defer resp.Body.Close()

	return latency, resp.StatusCode == http.StatusOK
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	requestCount := flag.Int("n", 10000, "Number of requests per endpoint class")
	concurrency := flag.Int("c", 100, "Concurrency level")
	poolID := flag.String("pool", "pool-1", "Pool ID")
	trancheID := flag.String("tranche", "trn-senior", "Tranche scope for listing reads")
	outputFile := flag.String("o", "", "Output JSON report file")
	flag.Parse()

	fmt.Println("=== RWA Gateway Benchmark - Pool/Listing Read Stress Test ===")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  API URL:        %s\n", *baseURL)
	fmt.Printf("  Pool:           %s\n", *poolID)
	fmt.Printf("  Tranche:        %s\n", *trancheID)
	fmt.Printf("  Requests/Class: %d (total: %d)\n", *requestCount, *requestCount*2)
	fmt.Printf("  Concurrency:    %d\n", *concurrency)
	fmt.Println()

	// Check health
	fmt.Print("Checking API health... ")
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        1000,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("FAILED: status %d\n", resp.StatusCode)
		os.Exit(1)
	}
	fmt.Println("OK")
	fmt.Println()

	results := &BenchmarkResults{
		PoolLatencies:    make([]time.Duration, 0, *requestCount),
		ListingLatencies: make([]time.Duration, 0, *requestCount),
	}

	poolURL := fmt.Sprintf("%s/v1/pools/%s", *baseURL, *poolID)
	listingURL := fmt.Sprintf("%s/v1/pools/%s/listings?tranche=%s", *baseURL, *poolID, *trancheID)

	// Semaphore for concurrency control
	sem := make(chan struct{}, *concurrency)
	var wg sync.WaitGroup

	// Progress tracking
	var processed int64
	total := int64(*requestCount * 2)
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := atomic.LoadInt64(&processed)
				pct := float64(p) / float64(total) * 100
				fmt.Printf("\r  Progress: %d/%d (%.1f%%)    ", p, total, pct)
			}
		}
	}()

	fmt.Println("Starting benchmark...")
	startTime := time.Now()

	for i := 0; i < *requestCount; i++ {
		// Pool detail read
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			latency, success := get(client, poolURL)
			results.AddPoolRead(latency, success)
			atomic.AddInt64(&processed, 1)
		}()

		// Listing book read
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			latency, success := get(client, listingURL)
			results.AddListingRead(latency, success)
			atomic.AddInt64(&processed, 1)
		}()
	}

	wg.Wait()
	close(done)
	elapsed := time.Since(startTime)

	fmt.Printf("\r                                                            \r")
	fmt.Println()

	// Calculate statistics
	allLatencies := append(results.PoolLatencies, results.ListingLatencies...)
	totalRequests := results.PoolReads + results.ListingReads
	totalSuccess := results.PoolSuccess + results.ListingSuccess
	totalFailed := results.PoolFailed + results.ListingFailed
	successRate := float64(totalSuccess) / float64(totalRequests) * 100
	throughput := float64(totalRequests) / elapsed.Seconds()

	fmt.Println("=== BENCHMARK RESULTS ===")
	fmt.Println()

	fmt.Printf("Test Duration:        %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput:           %.2f requests/sec\n", throughput)
	fmt.Println()

	fmt.Println("-- Request Statistics --")
	fmt.Printf("  Total Requests:     %d\n", totalRequests)
	fmt.Printf("  Pool Reads:         %d (success: %d, failed: %d)\n", results.PoolReads, results.PoolSuccess, results.PoolFailed)
	fmt.Printf("  Listing Reads:      %d (success: %d, failed: %d)\n", results.ListingReads, results.ListingSuccess, results.ListingFailed)
	fmt.Printf("  Success Rate:       %.2f%%\n", successRate)
	fmt.Println()

	fmt.Println("-- Overall Latency --")
	fmt.Printf("  Min:                %v\n", minLatency(allLatencies))
	fmt.Printf("  Max:                %v\n", maxLatency(allLatencies))
	fmt.Printf("  Average:            %v\n", avg(allLatencies))
	fmt.Printf("  P50 (Median):       %v\n", percentile(allLatencies, 0.50))
	fmt.Printf("  P90:                %v\n", percentile(allLatencies, 0.90))
	fmt.Printf("  P95:                %v\n", percentile(allLatencies, 0.95))
	fmt.Printf("  P99:                %v\n", percentile(allLatencies, 0.99))
	fmt.Println()

	fmt.Println("-- Pool Read Latency --")
	fmt.Printf("  Average:            %v\n", avg(results.PoolLatencies))
	fmt.Printf("  P99:                %v\n", percentile(results.PoolLatencies, 0.99))
	fmt.Println()

	fmt.Println("-- Listing Read Latency --")
	fmt.Printf("  Average:            %v\n", avg(results.ListingLatencies))
	fmt.Printf("  P99:                %v\n", percentile(results.ListingLatencies, 0.99))
	fmt.Println()

	// Save report if requested
	if *outputFile != "" {
		report := map[string]interface{}{
			"config": map[string]interface{}{
				"api_url":            *baseURL,
				"pool":               *poolID,
				"tranche":            *trancheID,
				"requests_per_class": *requestCount,
				"concurrency":        *concurrency,
			},
			"summary": map[string]interface{}{
				"duration_ms":        elapsed.Milliseconds(),
				"throughput_per_sec": throughput,
				"total_requests":     totalRequests,
				"success_requests":   totalSuccess,
				"failed_requests":    totalFailed,
				"success_rate":       successRate,
			},
			"latency_all": map[string]interface{}{
				"min_us": minLatency(allLatencies).Microseconds(),
				"max_us": maxLatency(allLatencies).Microseconds(),
				"avg_us": avg(allLatencies).Microseconds(),
				"p50_us": percentile(allLatencies, 0.50).Microseconds(),
				"p90_us": percentile(allLatencies, 0.90).Microseconds(),
				"p95_us": percentile(allLatencies, 0.95).Microseconds(),
				"p99_us": percentile(allLatencies, 0.99).Microseconds(),
			},
			"latency_pool": map[string]interface{}{
				"avg_us": avg(results.PoolLatencies).Microseconds(),
				"p99_us": percentile(results.PoolLatencies, 0.99).Microseconds(),
			},
			"latency_listings": map[string]interface{}{
				"avg_us": avg(results.ListingLatencies).Microseconds(),
				"p99_us": percentile(results.ListingLatencies, 0.99).Microseconds(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}

		file, err := os.Create(*outputFile)
		if err != nil {
			fmt.Printf("Failed to create report file: %v\n", err)
		} else {
			defer file.Close()
			encoder := json.NewEncoder(file)
			encoder.SetIndent("", "  ")
			_ = encoder.Encode(report)
			fmt.Printf("\nReport saved to: %s\n", *outputFile)
		}
	}
}
