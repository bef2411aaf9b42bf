package agent

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/math"
)

func demoTargets() []TrancheTarget {
	return []TrancheTarget{
		{TrancheID: "trn-senior", Class: "senior", Rank: 0, Principal: math.NewInt(7000), YieldBps: 800},
		{TrancheID: "trn-junior", Class: "junior", Rank: 1, Principal: math.NewInt(3000), YieldBps: 1500},
	}
}

func TestPreviewWaterfallFullPayoff(t *testing.T) {
	allocations := PreviewWaterfall(demoTargets(), math.NewInt(10300))

	if !allocations["senior"].Equal(math.NewInt(7560)) {
		t.Errorf("expected senior 7560, got %s", allocations["senior"])
	}
	if !allocations["junior"].Equal(math.NewInt(2740)) {
		t.Errorf("expected junior 2740, got %s", allocations["junior"])
	}
}

func TestPreviewWaterfallShortPayment(t *testing.T) {
	// Senior target is 7560; an 8000 payment leaves 440 for the junior
	allocations := PreviewWaterfall(demoTargets(), math.NewInt(8000))

	if !allocations["senior"].Equal(math.NewInt(7560)) {
		t.Errorf("expected senior 7560, got %s", allocations["senior"])
	}
	if !allocations["junior"].Equal(math.NewInt(440)) {
		t.Errorf("expected junior 440, got %s", allocations["junior"])
	}
}

func TestPreviewWaterfallSeniorShortfall(t *testing.T) {
	allocations := PreviewWaterfall(demoTargets(), math.NewInt(5000))

	if !allocations["senior"].Equal(math.NewInt(5000)) {
		t.Errorf("expected senior 5000, got %s", allocations["senior"])
	}
	if !allocations["junior"].IsZero() {
		t.Errorf("expected junior 0, got %s", allocations["junior"])
	}
}

func TestPreviewWaterfallSurplusToJunior(t *testing.T) {
	// Targets sum to 7560 + 3450 = 11010; surplus accrues to the junior
	allocations := PreviewWaterfall(demoTargets(), math.NewInt(12000))

	if !allocations["senior"].Equal(math.NewInt(7560)) {
		t.Errorf("expected senior 7560, got %s", allocations["senior"])
	}
	if !allocations["junior"].Equal(math.NewInt(4440)) {
		t.Errorf("expected junior 4440, got %s", allocations["junior"])
	}
}

func TestPreviewWaterfallEmpty(t *testing.T) {
	if got := PreviewWaterfall(nil, math.NewInt(1000)); len(got) != 0 {
		t.Errorf("expected no allocations, got %v", got)
	}
	if got := PreviewWaterfall(demoTargets(), math.ZeroInt()); len(got) != 0 {
		t.Errorf("expected no allocations for zero payment, got %v", got)
	}
}

func TestHandlePaymentQueuesDistribution(t *testing.T) {
	submitter := NewMockSubmitter()
	a := NewSettlementAgent(nil, submitter)

	a.RegisterPool(&PoolInfo{
		PoolID:       "pool-1",
		Manager:      "cosmos1manager",
		PaymentDenom: "uusdc",
		Tranches:     demoTargets(),
	})

	err := a.handleEvent(Event{
		Type:      EventTypePaymentRecorded,
		PoolID:    "pool-1",
		Amount:    math.NewInt(10300),
		Epoch:     1,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.buffer.Len() != 1 {
		t.Fatalf("expected 1 buffered distribution, got %d", a.buffer.Len())
	}

	instruction := a.buffer.Peek()[0]
	if instruction.PoolID != "pool-1" || instruction.Epoch != 1 {
		t.Errorf("unexpected instruction: %+v", instruction)
	}
	if !instruction.Amount.Equal(math.NewInt(10300)) {
		t.Errorf("expected amount 10300, got %s", instruction.Amount)
	}
	if !instruction.Allocations["senior"].Equal(math.NewInt(7560)) {
		t.Errorf("expected senior allocation 7560, got %s", instruction.Allocations["senior"])
	}
}

func TestHandlePaymentUnknownPool(t *testing.T) {
	a := NewSettlementAgent(nil, NewMockSubmitter())

	err := a.handleEvent(Event{
		Type:   EventTypePaymentRecorded,
		PoolID: "pool-99",
		Amount: math.NewInt(100),
		Epoch:  1,
	})
	if err == nil {
		t.Fatal("expected error for unknown pool")
	}
}

func TestSubmitPendingRetriesOnFailure(t *testing.T) {
	submitter := NewMockSubmitter()
	submitter.SetSimulateFailure(true)

	a := NewSettlementAgent(nil, submitter)
	a.buffer.Add(&DistributionInstruction{
		PoolID: "pool-1",
		Epoch:  1,
		Amount: math.NewInt(100),
	})

	a.submitPending(context.Background())

	// Failed submission puts the instruction back for the next tick
	if a.buffer.Len() != 1 {
		t.Fatalf("expected instruction re-buffered, got %d", a.buffer.Len())
	}

	submitter.SetSimulateFailure(false)
	a.submitPending(context.Background())

	if a.buffer.Len() != 0 {
		t.Fatalf("expected buffer drained, got %d", a.buffer.Len())
	}
	if len(submitter.GetSubmittedDistributions()) != 1 {
		t.Fatalf("expected 1 submitted distribution")
	}
}

func TestHandleMaturity(t *testing.T) {
	submitter := NewMockSubmitter()
	a := NewSettlementAgent(nil, submitter)

	a.RegisterPool(&PoolInfo{PoolID: "pool-1", Manager: "cosmos1manager"})

	if err := a.handleEvent(Event{Type: EventTypePoolMatured, PoolID: "pool-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matured := submitter.GetMaturedPools()
	if len(matured) != 1 || matured[0] != "pool-1" {
		t.Fatalf("expected pool-1 maturity submitted, got %v", matured)
	}
}

func TestInstructionBufferFlushBatch(t *testing.T) {
	buffer := NewInstructionBuffer(2)
	for i := 0; i < 5; i++ {
		buffer.Add(&DistributionInstruction{PoolID: "pool-1", Epoch: uint64(i + 1), Amount: math.NewInt(1)})
	}

	batch := buffer.FlushBatch()
	if len(batch) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(batch))
	}
	if buffer.Len() != 3 {
		t.Fatalf("expected 3 remaining, got %d", buffer.Len())
	}
}
