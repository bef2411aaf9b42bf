package api

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/openrwa/rwa-chain/api/types"
)

// MockService is an in-memory implementation of the read services, used
// for development and testing without a running chain.
type MockService struct {
	mu          sync.RWMutex
	pools       map[string]*types.Pool
	tranches    map[string][]*types.Tranche // poolID -> tranches
	positions   map[string][]*types.Position
	listings    map[string]*types.Listing
	assets      map[string]*types.Asset
	settlements map[string]*types.SettlementStatus
}

// NewMockService creates a mock service seeded with sample data
func NewMockService() *MockService {
	s := &MockService{
		pools:       make(map[string]*types.Pool),
		tranches:    make(map[string][]*types.Tranche),
		positions:   make(map[string][]*types.Position),
		listings:    make(map[string]*types.Listing),
		assets:      make(map[string]*types.Asset),
		settlements: make(map[string]*types.SettlementStatus),
	}
	s.seed()
	return s
}

func (s *MockService) seed() {
	now := time.Now().Unix()

	s.pools["pool-1"] = &types.Pool{
		PoolID:            "pool-1",
		Name:              "Trade Receivables Q3",
		Description:       "Pooled invoice receivables, 90 day tenor",
		Creator:           "cosmos1manager",
		Phase:             "active",
		Active:            true,
		ManagementFeeBps:  100,
		PerformanceFeeBps: 1000,
		TotalValue:        "10300",
		TotalShares:       "10000",
		TotalInvested:     "10000",
		TrancheIDs:        []string{"trn-senior", "trn-junior"},
		AssetIDs:          []string{"ast-1"},
		CreatedAt:         now - 86400,
	}
	s.tranches["pool-1"] = []*types.Tranche{
		{
			TrancheID:        "trn-senior",
			PoolID:           "pool-1",
			Class:            "senior",
			SeniorityRank:    0,
			PercentageBps:    7000,
			ExpectedYieldBps: 800,
			TotalInvested:    "7000",
			TotalValue:       "7560",
			TotalShares:      "7000",
			TokenDenom:       "tranche/pool-1/snr",
		},
		{
			TrancheID:        "trn-junior",
			PoolID:           "pool-1",
			Class:            "junior",
			SeniorityRank:    1,
			PercentageBps:    3000,
			ExpectedYieldBps: 1500,
			TotalInvested:    "3000",
			TotalValue:       "2740",
			TotalShares:      "3000",
			TokenDenom:       "tranche/pool-1/jnr",
		},
	}
	s.positions["trn-senior"] = []*types.Position{
		{Scope: "trn-senior", Investor: "cosmos1alice", Shares: "7000", Invested: "7000", Value: "7560"},
	}
	s.positions["trn-junior"] = []*types.Position{
		{Scope: "trn-junior", Investor: "cosmos1bob", Shares: "3000", Invested: "3000", Value: "2740"},
	}
	s.listings["lst-1"] = &types.Listing{
		ListingID:     "lst-1",
		PoolID:        "pool-1",
		Scope:         "trn-senior",
		Seller:        "cosmos1alice",
		Shares:        "1000",
		PricePerShare: "1",
		Status:        "open",
		CreatedAt:     now - 3600,
	}
	s.assets["ast-1"] = &types.Asset{
		AssetID:       "ast-1",
		Name:          "Invoice batch 42",
		Description:   "Q3 receivables",
		Category:      "receivable",
		Custodian:     "cosmos1custodian",
		Status:        "managed",
		ValueEstimate: "500000",
		VerifiedBy:    "cosmos1manager",
		RegisteredAt:  now - 172800,
	}
	s.settlements["pool-1"] = &types.SettlementStatus{
		PoolID:           "pool-1",
		PendingAmount:    "0",
		PaymentEpoch:     1,
		DistributedEpoch: 1,
		TotalRecorded:    "10300",
		TotalDistributed: "10300",
	}
}

// GetPools returns all pools
func (s *MockService) GetPools() ([]*types.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools := make([]*types.Pool, 0, len(s.pools))
	for _, pool := range s.pools {
		pools = append(pools, pool)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].PoolID < pools[j].PoolID })
	return pools, nil
}

// GetPool returns a pool by ID
func (s *MockService) GetPool(poolID string) (*types.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	return pool, nil
}

// GetTranches returns the tranches of a pool, most senior first
func (s *MockService) GetTranches(poolID string) ([]*types.Tranche, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.pools[poolID]; !ok {
		return nil, fmt.Errorf("pool %s not found", poolID)
	}
	tranches := s.tranches[poolID]
	sorted := make([]*types.Tranche, len(tranches))
	copy(sorted, tranches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SeniorityRank < sorted[j].SeniorityRank })
	return sorted, nil
}

// GetPositions returns all positions in a pool or tranche scope
func (s *MockService) GetPositions(scope string) ([]*types.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.positions[scope], nil
}

// GetUserPositions returns all positions held by an investor
func (s *MockService) GetUserPositions(investor string) ([]*types.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*types.Position
	for _, positions := range s.positions {
		for _, position := range positions {
			if position.Investor == investor {
				result = append(result, position)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Scope < result[j].Scope })
	return result, nil
}

// GetListings returns the open listings in a scope, cheapest first
func (s *MockService) GetListings(scope string) ([]*types.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*types.Listing
	for _, listing := range s.listings {
		if listing.Scope == scope && listing.Status == "open" {
			result = append(result, listing)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PricePerShare < result[j].PricePerShare })
	return result, nil
}

// GetListing returns a listing by ID
func (s *MockService) GetListing(listingID string) (*types.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing %s not found", listingID)
	}
	return listing, nil
}

// GetAssets returns all registered assets
func (s *MockService) GetAssets() ([]*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := make([]*types.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].AssetID < assets[j].AssetID })
	return assets, nil
}

// GetAsset returns an asset by ID
func (s *MockService) GetAsset(assetID string) (*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %s not found", assetID)
	}
	return asset, nil
}

// GetSettlement returns the settlement state of a pool
func (s *MockService) GetSettlement(poolID string) (*types.SettlementStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settlement, ok := s.settlements[poolID]
	if !ok {
		return nil, fmt.Errorf("no settlement state for pool %s", poolID)
	}
	return settlement, nil
}
