package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "tranche"
	StoreKey   = ModuleName
)

// Tranche classes, ordered by seniority. Senior settles first in a
// distribution waterfall.
const (
	TrancheClassSenior = "senior"
	TrancheClassJunior = "junior"
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = int64(10000)

// SeniorityRank returns the waterfall position for a class. Lower settles
// first.
func SeniorityRank(class string) int64 {
	if class == TrancheClassSenior {
		return 0
	}
	return 1
}

// ValidClass reports whether the tranche class is known
func ValidClass(class string) bool {
	return class == TrancheClassSenior || class == TrancheClassJunior
}

// Tranche is a risk-stratified slice of a pool with its own share token.
// TotalInvested tracks cumulative principal; TotalValue is the current
// redeemable value, re-marked by each yield distribution.
type Tranche struct {
	TrancheID        string `json:"tranche_id"`
	PoolID           string `json:"pool_id"`
	Class            string `json:"class"`
	SeniorityRank    int64  `json:"seniority_rank"`
	PercentageBps    int64  `json:"percentage_bps"`
	ExpectedYieldBps int64  `json:"expected_yield_bps"`

	TotalInvested math.Int `json:"total_invested"`
	TotalValue    math.Int `json:"total_value"`
	TotalShares   math.Int `json:"total_shares"`

	Active     bool   `json:"active"`
	TokenDenom string `json:"token_denom"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewTranche creates an active tranche with zeroed totals
func NewTranche(poolID, class string, percentageBps, expectedYieldBps int64, tokenSymbol string) *Tranche {
	now := time.Now().Unix()
	id := generateID("trn")
	return &Tranche{
		TrancheID:        id,
		PoolID:           poolID,
		Class:            class,
		SeniorityRank:    SeniorityRank(class),
		PercentageBps:    percentageBps,
		ExpectedYieldBps: expectedYieldBps,
		TotalInvested:    math.ZeroInt(),
		TotalValue:       math.ZeroInt(),
		TotalShares:      math.ZeroInt(),
		Active:           true,
		TokenDenom:       TokenDenom(poolID, tokenSymbol),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// TokenDenom derives the bank denom for a tranche share token
func TokenDenom(poolID, symbol string) string {
	return fmt.Sprintf("tranche/%s/%s", poolID, strings.ToLower(symbol))
}

// ExpectedReturn is the tranche's full entitlement in a distribution:
// principal plus the expected yield, floored.
func (t *Tranche) ExpectedReturn() math.Int {
	bps := math.NewInt(BpsDenominator + t.ExpectedYieldBps)
	return t.TotalInvested.Mul(bps).Quo(math.NewInt(BpsDenominator))
}

// generateID generates a unique ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
