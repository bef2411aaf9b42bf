package agent

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/math"
)

// Config holds the agent configuration
type Config struct {
	BatchSize     int           // Maximum distributions per batch submission
	BatchInterval time.Duration // Time interval for batch submission
	WebSocketURL  string        // WebSocket URL for event listening
	ChainRPCURL   string        // Chain RPC URL for submission
}

// DefaultConfig returns the default agent configuration
func DefaultConfig() *Config {
	return &Config{
		BatchSize:     50,
		BatchInterval: 2 * time.Second,
		WebSocketURL:  "ws://localhost:26657/websocket",
		ChainRPCURL:   "http://localhost:26657",
	}
}

// TrancheTarget describes one tranche's claim in the waterfall
type TrancheTarget struct {
	TrancheID string
	Class     string
	Rank      int // 0 is most senior
	Principal math.Int
	YieldBps  int64
}

// Target returns principal plus the expected yield, floored
func (t TrancheTarget) Target() math.Int {
	yield := t.Principal.MulRaw(t.YieldBps).QuoRaw(10000)
	return t.Principal.Add(yield)
}

// PoolInfo holds the cached view of a pool needed to preview a waterfall
type PoolInfo struct {
	PoolID       string
	Manager      string
	PaymentDenom string
	Tranches     []TrancheTarget
}

// DistributionInstruction is one pending distribution to submit on-chain
type DistributionInstruction struct {
	PoolID      string
	Epoch       uint64
	Amount      math.Int
	Allocations map[string]math.Int // class -> amount, preview only
	CreatedAt   time.Time
}

// SettlementAgent watches recorded asset payments and submits yield
// distribution transactions in batches.
type SettlementAgent struct {
	config    *Config
	cache     *PoolCache
	buffer    *InstructionBuffer
	submitter TxSubmitter

	// Pending payment amounts per pool, accumulated between distributions
	pending   map[string]math.Int
	lastEpoch map[string]uint64
	mu        sync.RWMutex

	// Event channel fed by the chain event subscription
	eventCh chan Event

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Event represents an incoming event from the chain
type Event struct {
	Type      EventType
	PoolID    string
	Amount    math.Int
	Epoch     uint64
	Timestamp time.Time
}

// EventType represents the type of chain event
type EventType int

const (
	EventTypePaymentRecorded EventType = iota
	EventTypePoolMatured
	EventTypeDistributionConfirmed
)

func (e EventType) String() string {
	switch e {
	case EventTypePaymentRecorded:
		return "payment_recorded"
	case EventTypePoolMatured:
		return "pool_matured"
	case EventTypeDistributionConfirmed:
		return "distribution_confirmed"
	default:
		return "unknown"
	}
}

// NewSettlementAgent creates a new settlement agent instance
func NewSettlementAgent(config *Config, submitter TxSubmitter) *SettlementAgent {
	if config == nil {
		config = DefaultConfig()
	}
	if submitter == nil {
		submitter = NewMockSubmitter()
	}

	return &SettlementAgent{
		config:    config,
		cache:     NewPoolCache(),
		buffer:    NewInstructionBuffer(config.BatchSize),
		submitter: submitter,
		pending:   make(map[string]math.Int),
		lastEpoch: make(map[string]uint64),
		eventCh:   make(chan Event, 1000),
		stopCh:    make(chan struct{}),
	}
}

// Start starts the settlement agent
func (a *SettlementAgent) Start(ctx context.Context) error {
	log.Println("Starting settlement agent...")

	a.wg.Add(1)
	go a.eventLoop(ctx)

	a.wg.Add(1)
	go a.batchLoop(ctx)

	log.Println("Settlement agent started")
	return nil
}

// Stop stops the settlement agent
func (a *SettlementAgent) Stop() error {
	log.Println("Stopping settlement agent...")
	close(a.stopCh)
	a.wg.Wait()
	log.Println("Settlement agent stopped")
	return nil
}

// RegisterPool registers a pool the agent should settle
func (a *SettlementAgent) RegisterPool(info *PoolInfo) {
	a.cache.Set(info)
}

// eventLoop processes incoming events
func (a *SettlementAgent) eventLoop(ctx context.Context) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stopCh:
			return
		case event := <-a.eventCh:
			if err := a.handleEvent(event); err != nil {
				log.Printf("Error handling event: %v", err)
			}
		}
	}
}

// batchLoop periodically submits pending distributions to the chain
func (a *SettlementAgent) batchLoop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.BatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.submitPending(ctx)
			return
		case <-a.stopCh:
			a.submitPending(ctx)
			return
		case <-ticker.C:
			a.submitPending(ctx)
		}
	}
}

// submitPending submits buffered distributions to the chain
func (a *SettlementAgent) submitPending(ctx context.Context) {
	instructions := a.buffer.Flush()
	if len(instructions) == 0 {
		return
	}

	log.Printf("Submitting %d distributions to chain...", len(instructions))
	if err := a.submitter.SubmitDistributions(ctx, instructions); err != nil {
		log.Printf("Error submitting distributions: %v", err)
		// Re-add for retry on the next tick
		for _, instruction := range instructions {
			a.buffer.Add(instruction)
		}
	}
}

// handleEvent handles an incoming chain event
func (a *SettlementAgent) handleEvent(event Event) error {
	switch event.Type {
	case EventTypePaymentRecorded:
		return a.handlePayment(event)
	case EventTypePoolMatured:
		return a.handleMaturity(event)
	case EventTypeDistributionConfirmed:
		return a.handleConfirmation(event)
	default:
		return fmt.Errorf("unknown event type: %v", event.Type)
	}
}

// handlePayment accumulates a recorded payment and queues a distribution
// for the payment's epoch.
func (a *SettlementAgent) handlePayment(event Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, ok := a.cache.Get(event.PoolID)
	if !ok {
		return fmt.Errorf("unknown pool: %s", event.PoolID)
	}

	pending, ok := a.pending[event.PoolID]
	if !ok {
		pending = math.ZeroInt()
	}
	pending = pending.Add(event.Amount)
	a.pending[event.PoolID] = pending

	// One instruction per epoch; a later payment in the same epoch
	// supersedes the earlier preview.
	if event.Epoch <= a.lastEpoch[event.PoolID] {
		return nil
	}
	a.lastEpoch[event.PoolID] = event.Epoch

	allocations := PreviewWaterfall(info.Tranches, pending)
	a.buffer.Add(&DistributionInstruction{
		PoolID:      event.PoolID,
		Epoch:       event.Epoch,
		Amount:      pending,
		Allocations: allocations,
		CreatedAt:   time.Now(),
	})
	a.pending[event.PoolID] = math.ZeroInt()

	return nil
}

// handleMaturity forwards a maturity event to the submitter so the pool
// can be closed out once its final distribution lands.
func (a *SettlementAgent) handleMaturity(event Event) error {
	a.mu.RLock()
	_, ok := a.cache.Get(event.PoolID)
	a.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown pool: %s", event.PoolID)
	}

	return a.submitter.SubmitMaturity(context.Background(), event.PoolID)
}

// handleConfirmation drops the pool's pending state once the chain
// confirms a distribution.
func (a *SettlementAgent) handleConfirmation(event Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending[event.PoolID] = math.ZeroInt()
	return nil
}

// PreviewWaterfall allocates a payment across tranche targets, most senior
// first. Any amount beyond the sum of all targets accrues to the most
// junior tranche.
func PreviewWaterfall(targets []TrancheTarget, payment math.Int) map[string]math.Int {
	allocations := make(map[string]math.Int, len(targets))
	if len(targets) == 0 || !payment.IsPositive() {
		return allocations
	}

	sorted := make([]TrancheTarget, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	remaining := payment
	for _, target := range sorted {
		claim := target.Target()
		alloc := math.MinInt(remaining, claim)
		allocations[target.Class] = alloc
		remaining = remaining.Sub(alloc)
	}

	if remaining.IsPositive() {
		junior := sorted[len(sorted)-1].Class
		allocations[junior] = allocations[junior].Add(remaining)
	}

	return allocations
}

// RecordPayment feeds a payment event to the agent (simulated WebSocket)
func (a *SettlementAgent) RecordPayment(poolID string, amount math.Int, epoch uint64) {
	a.eventCh <- Event{
		Type:      EventTypePaymentRecorded,
		PoolID:    poolID,
		Amount:    amount,
		Epoch:     epoch,
		Timestamp: time.Now(),
	}
}

// NotifyMaturity feeds a maturity event to the agent
func (a *SettlementAgent) NotifyMaturity(poolID string) {
	a.eventCh <- Event{
		Type:      EventTypePoolMatured,
		PoolID:    poolID,
		Timestamp: time.Now(),
	}
}

// Stats returns agent statistics
type Stats struct {
	PoolCount           int
	PendingDistribution int
	BufferSize          int
}

// GetStats returns current agent statistics
func (a *SettlementAgent) GetStats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	pending := 0
	for _, amount := range a.pending {
		if amount.IsPositive() {
			pending++
		}
	}

	return Stats{
		PoolCount:           a.cache.Len(),
		PendingDistribution: pending,
		BufferSize:          a.buffer.Len(),
	}
}
