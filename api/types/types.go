package types

// Pool represents an asset pool as served by the API
type Pool struct {
	PoolID            string   `json:"pool_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Creator           string   `json:"creator"`
	Phase             string   `json:"phase"`
	Active            bool     `json:"active"`
	ManagementFeeBps  int64    `json:"management_fee_bps"`
	PerformanceFeeBps int64    `json:"performance_fee_bps"`
	TotalValue        string   `json:"total_value"`
	TotalShares       string   `json:"total_shares"`
	TotalInvested     string   `json:"total_invested"`
	TrancheIDs        []string `json:"tranche_ids,omitempty"`
	AssetIDs          []string `json:"asset_ids,omitempty"`
	CreatedAt         int64    `json:"created_at"`
}

// Tranche represents a pool tranche
type Tranche struct {
	TrancheID        string `json:"tranche_id"`
	PoolID           string `json:"pool_id"`
	Class            string `json:"class"`
	SeniorityRank    int64  `json:"seniority_rank"`
	PercentageBps    int64  `json:"percentage_bps"`
	ExpectedYieldBps int64  `json:"expected_yield_bps"`
	TotalInvested    string `json:"total_invested"`
	TotalValue       string `json:"total_value"`
	TotalShares      string `json:"total_shares"`
	TokenDenom       string `json:"token_denom"`
}

// Position represents an investor position in a pool or tranche
type Position struct {
	Scope    string `json:"scope"`
	Investor string `json:"investor"`
	Shares   string `json:"shares"`
	Invested string `json:"invested"`
	Value    string `json:"value"`
}

// Listing represents an open share listing on the secondary market
type Listing struct {
	ListingID     string `json:"listing_id"`
	PoolID        string `json:"pool_id"`
	Scope         string `json:"scope"`
	Seller        string `json:"seller"`
	Shares        string `json:"shares"`
	PricePerShare string `json:"price_per_share"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"created_at"`
}

// Asset represents a registered real-world asset
type Asset struct {
	AssetID       string `json:"asset_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category"`
	Custodian     string `json:"custodian"`
	Status        string `json:"status"`
	ValueEstimate string `json:"value_estimate"`
	VerifiedBy    string `json:"verified_by,omitempty"`
	RegisteredAt  int64  `json:"registered_at"`
}

// SettlementStatus represents a pool's settlement state
type SettlementStatus struct {
	PoolID           string `json:"pool_id"`
	PendingAmount    string `json:"pending_amount"`
	PaymentEpoch     int64  `json:"payment_epoch"`
	DistributedEpoch int64  `json:"distributed_epoch"`
	TotalRecorded    string `json:"total_recorded"`
	TotalDistributed string `json:"total_distributed"`
}

// PoolService serves pool, tranche, and position reads
type PoolService interface {
	GetPools() ([]*Pool, error)
	GetPool(poolID string) (*Pool, error)
	GetTranches(poolID string) ([]*Tranche, error)
	GetPositions(scope string) ([]*Position, error)
	GetUserPositions(investor string) ([]*Position, error)
}

// MarketService serves secondary-market listing reads
type MarketService interface {
	GetListings(scope string) ([]*Listing, error)
	GetListing(listingID string) (*Listing, error)
}

// RegistryService serves asset registry reads
type RegistryService interface {
	GetAssets() ([]*Asset, error)
	GetAsset(assetID string) (*Asset, error)
}

// SettlementService serves settlement state reads
type SettlementService interface {
	GetSettlement(poolID string) (*SettlementStatus, error)
}
