package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// TxSubmitter defines the interface for submitting transactions to the chain
type TxSubmitter interface {
	// SubmitDistributions submits a batch of yield distributions
	SubmitDistributions(ctx context.Context, instructions []*DistributionInstruction) error

	// SubmitMaturity submits a pool maturity transition
	SubmitMaturity(ctx context.Context, poolID string) error

	// GetStatus returns the submitter status
	GetStatus() SubmitterStatus
}

// SubmitterStatus represents the status of a submitter
type SubmitterStatus struct {
	Connected         bool
	PendingTxCount    int
	LastSubmitTime    time.Time
	LastError         string
	TotalSubmissions  int64
	FailedSubmissions int64
}

// MockSubmitter is a mock implementation for testing
type MockSubmitter struct {
	mu              sync.Mutex
	distributions   []*DistributionInstruction
	maturedPools    []string
	status          SubmitterStatus
	simulateFailure bool
}

// NewMockSubmitter creates a new mock submitter
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{
		distributions: make([]*DistributionInstruction, 0),
		maturedPools:  make([]string, 0),
		status: SubmitterStatus{
			Connected: true,
		},
	}
}

// SubmitDistributions submits distributions (mock implementation)
func (s *MockSubmitter) SubmitDistributions(ctx context.Context, instructions []*DistributionInstruction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.simulateFailure {
		s.status.FailedSubmissions++
		s.status.LastError = "simulated failure"
		return fmt.Errorf("simulated failure")
	}

	s.distributions = append(s.distributions, instructions...)
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()

	log.Printf("[MockSubmitter] Submitted %d distributions", len(instructions))
	for _, instruction := range instructions {
		log.Printf("  Distribution: pool=%s epoch=%d amount=%s", instruction.PoolID, instruction.Epoch, instruction.Amount.String())
	}

	return nil
}

// SubmitMaturity submits a pool maturity (mock implementation)
func (s *MockSubmitter) SubmitMaturity(ctx context.Context, poolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.simulateFailure {
		s.status.FailedSubmissions++
		s.status.LastError = "simulated failure"
		return fmt.Errorf("simulated failure")
	}

	s.maturedPools = append(s.maturedPools, poolID)
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()

	log.Printf("[MockSubmitter] Submitted maturity for pool %s", poolID)

	return nil
}

// GetStatus returns the mock submitter status
func (s *MockSubmitter) GetStatus() SubmitterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// GetSubmittedDistributions returns all submitted distributions (for testing)
func (s *MockSubmitter) GetSubmittedDistributions() []*DistributionInstruction {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*DistributionInstruction, len(s.distributions))
	copy(result, s.distributions)
	return result
}

// GetMaturedPools returns all submitted maturities (for testing)
func (s *MockSubmitter) GetMaturedPools() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]string, len(s.maturedPools))
	copy(result, s.maturedPools)
	return result
}

// SetSimulateFailure enables or disables failure simulation
func (s *MockSubmitter) SetSimulateFailure(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulateFailure = fail
}

// Clear clears all submitted data (for testing)
func (s *MockSubmitter) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distributions = make([]*DistributionInstruction, 0)
	s.maturedPools = make([]string, 0)
}

// BatchSubmitter submits distributions in batches over chain RPC
type BatchSubmitter struct {
	rpcURL        string
	batchSize     int
	retryAttempts int
	retryDelay    time.Duration

	mu     sync.Mutex
	status SubmitterStatus
}

// BatchSubmitterConfig holds configuration for BatchSubmitter
type BatchSubmitterConfig struct {
	RPCURL        string
	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultBatchSubmitterConfig returns default configuration
func DefaultBatchSubmitterConfig() *BatchSubmitterConfig {
	return &BatchSubmitterConfig{
		RPCURL:        "http://localhost:26657",
		BatchSize:     50,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// NewBatchSubmitter creates a new batch submitter
func NewBatchSubmitter(config *BatchSubmitterConfig) *BatchSubmitter {
	if config == nil {
		config = DefaultBatchSubmitterConfig()
	}

	return &BatchSubmitter{
		rpcURL:        config.RPCURL,
		batchSize:     config.BatchSize,
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		status: SubmitterStatus{
			Connected: true,
		},
	}
}

// SubmitDistributions submits distributions in batches
func (s *BatchSubmitter) SubmitDistributions(ctx context.Context, instructions []*DistributionInstruction) error {
	if len(instructions) == 0 {
		return nil
	}

	s.mu.Lock()
	s.status.PendingTxCount = len(instructions)
	s.mu.Unlock()

	for i := 0; i < len(instructions); i += s.batchSize {
		end := i + s.batchSize
		if end > len(instructions) {
			end = len(instructions)
		}
		batch := instructions[i:end]

		if err := s.submitBatchWithRetry(ctx, batch); err != nil {
			s.mu.Lock()
			s.status.FailedSubmissions++
			s.status.LastError = err.Error()
			s.mu.Unlock()
			return fmt.Errorf("failed to submit batch: %w", err)
		}
	}

	s.mu.Lock()
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()
	s.status.PendingTxCount = 0
	s.mu.Unlock()

	return nil
}

// submitBatchWithRetry submits a batch with retry logic
func (s *BatchSubmitter) submitBatchWithRetry(ctx context.Context, batch []*DistributionInstruction) error {
	var lastErr error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if err := s.submitBatch(ctx, batch); err != nil {
			lastErr = err
			log.Printf("Batch submission attempt %d failed: %v", attempt+1, err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all retry attempts failed: %w", lastErr)
}

// submitBatch submits a single batch
func (s *BatchSubmitter) submitBatch(ctx context.Context, batch []*DistributionInstruction) error {
	msg := struct {
		Jsonrpc string        `json:"jsonrpc"`
		ID      int           `json:"id"`
		Method  string        `json:"method"`
		Params  []interface{} `json:"params"`
	}{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  "broadcast_tx_async",
		Params:  []interface{}{s.encodeInstructions(batch)},
	}

	// Log the submission (in production, this would be an actual RPC call)
	msgBytes, _ := json.Marshal(msg)
	log.Printf("[BatchSubmitter] Submitting batch of %d distributions to %s", len(batch), s.rpcURL)
	log.Printf("[BatchSubmitter] Message: %s", string(msgBytes))

	return nil
}

// encodeInstructions encodes distributions for submission
func (s *BatchSubmitter) encodeInstructions(instructions []*DistributionInstruction) string {
	data := make([]map[string]string, len(instructions))
	for i, instruction := range instructions {
		data[i] = map[string]string{
			"pool_id": instruction.PoolID,
			"epoch":   fmt.Sprintf("%d", instruction.Epoch),
			"amount":  instruction.Amount.String(),
		}
	}
	encoded, _ := json.Marshal(data)
	return string(encoded)
}

// SubmitMaturity submits a pool maturity transition
func (s *BatchSubmitter) SubmitMaturity(ctx context.Context, poolID string) error {
	log.Printf("[BatchSubmitter] Submitting maturity for pool %s", poolID)

	s.mu.Lock()
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()
	s.mu.Unlock()

	return nil
}

// GetStatus returns the submitter status
func (s *BatchSubmitter) GetStatus() SubmitterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetRPCURL updates the RPC URL
func (s *BatchSubmitter) SetRPCURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rpcURL = url
}

// SubmitterFactory creates submitters based on configuration
type SubmitterFactory struct{}

// NewSubmitterFactory creates a new submitter factory
func NewSubmitterFactory() *SubmitterFactory {
	return &SubmitterFactory{}
}

// Create creates a new submitter based on the type
func (f *SubmitterFactory) Create(submitterType string, config *BatchSubmitterConfig) TxSubmitter {
	switch submitterType {
	case "mock":
		return NewMockSubmitter()
	case "batch":
		return NewBatchSubmitter(config)
	default:
		return NewMockSubmitter()
	}
}
