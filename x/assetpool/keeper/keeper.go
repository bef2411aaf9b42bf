package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"
)

// Store key prefixes
var (
	PoolKeyPrefix      = []byte{0x01}
	PositionKeyPrefix  = []byte{0x02}
	AssetPoolKeyPrefix = []byte{0x03}
	ListingKeyPrefix   = []byte{0x04}
)

// DefaultPaymentDenom is the settlement token for deposits, payouts, and
// share trades.
const DefaultPaymentDenom = "urusd"

// BankKeeper is the expected bank keeper, the payment-token transfer
// collaborator.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// RoleKeeper is the expected role keeper
type RoleKeeper interface {
	HasRole(ctx sdk.Context, addr, role string) bool
}

// AssetKeeper is the expected asset registry keeper, the eligibility
// oracle for attaching assets.
type AssetKeeper interface {
	IsPoolable(ctx sdk.Context, assetID string) (bool, error)
}

// TrancheKeeper is the expected tranche keeper. Tranched pools delegate
// share accounting to it.
type TrancheKeeper interface {
	CreateTranche(ctx sdk.Context, creator, poolID, class string, percentageBps, expectedYieldBps int64, tokenSymbol string) (*tranchetypes.Tranche, error)
	HasTranche(ctx sdk.Context, trancheID string) bool
	TokenDenom(ctx sdk.Context, trancheID string) (string, error)
	RecordInvestment(ctx sdk.Context, trancheID, investor string, amount math.Int) (math.Int, error)
	RecordRedemption(ctx sdk.Context, trancheID, investor string, shares math.Int) (math.Int, error)
}

// Keeper manages pools, positions, and share listings
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	bankKeeper    BankKeeper
	roleKeeper    RoleKeeper
	assetKeeper   AssetKeeper
	trancheKeeper TrancheKeeper
	guard         *Guard
	book          ListingBook
	paymentDenom  string
	logger        log.Logger
}

// NewKeeper creates a new assetpool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	roleKeeper RoleKeeper,
	assetKeeper AssetKeeper,
	trancheKeeper TrancheKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		bankKeeper:    bankKeeper,
		roleKeeper:    roleKeeper,
		assetKeeper:   assetKeeper,
		trancheKeeper: trancheKeeper,
		guard:         NewGuard(),
		book:          NewBTreeListingBook(),
		paymentDenom:  DefaultPaymentDenom,
		logger:        logger.With("module", "x/assetpool"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// PaymentDenom returns the settlement token denom
func (k *Keeper) PaymentDenom() string {
	return k.paymentDenom
}

// SetPaymentDenom overrides the settlement token denom
func (k *Keeper) SetPaymentDenom(denom string) {
	k.paymentDenom = denom
}

// Book returns the in-memory listing book
func (k *Keeper) Book() ListingBook {
	return k.book
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func poolKey(poolID string) []byte {
	return append(PoolKeyPrefix, []byte(poolID)...)
}

func positionKey(scope, investor string) []byte {
	return append(PositionKeyPrefix, []byte(scope+":"+investor)...)
}

func assetPoolKey(assetID string) []byte {
	return append(AssetPoolKeyPrefix, []byte(assetID)...)
}

func listingKey(listingID string) []byte {
	return append(ListingKeyPrefix, []byte(listingID)...)
}

// SetPool stores a pool
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(poolKey(pool.PoolID), bz)
}

// GetPool retrieves a pool by ID
func (k *Keeper) GetPool(ctx sdk.Context, poolID string) (*types.Pool, error) {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// GetAllPools returns every pool
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// SetPosition stores a position. Zero-share positions are kept so the
// cumulative-invested history survives full redemptions.
func (k *Keeper) SetPosition(ctx sdk.Context, position *types.Position) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(position)
	store.Set(positionKey(position.Scope, position.Investor), bz)
}

// GetPosition retrieves an investor's position in a scope, returning an
// empty position when none exists.
func (k *Keeper) GetPosition(ctx sdk.Context, scope, investor string) *types.Position {
	store := k.GetStore(ctx)
	bz := store.Get(positionKey(scope, investor))
	if bz == nil {
		return types.NewPosition(scope, investor)
	}
	var position types.Position
	if err := json.Unmarshal(bz, &position); err != nil {
		return types.NewPosition(scope, investor)
	}
	return &position
}

// GetPositionsByScope returns all positions in a scope
func (k *Keeper) GetPositionsByScope(ctx sdk.Context, scope string) []*types.Position {
	store := k.GetStore(ctx)
	prefix := append(PositionKeyPrefix, []byte(scope+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var positions []*types.Position
	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			continue
		}
		positions = append(positions, &position)
	}
	return positions
}

// GetAssetPool returns the pool an asset is attached to, if any
func (k *Keeper) GetAssetPool(ctx sdk.Context, assetID string) (string, bool) {
	store := k.GetStore(ctx)
	bz := store.Get(assetPoolKey(assetID))
	if bz == nil {
		return "", false
	}
	return string(bz), true
}

// SetListing stores a listing
func (k *Keeper) SetListing(ctx sdk.Context, listing *types.Listing) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(listing)
	store.Set(listingKey(listing.ListingID), bz)
}

// GetListing retrieves a listing by ID
func (k *Keeper) GetListing(ctx sdk.Context, listingID string) (*types.Listing, error) {
	store := k.GetStore(ctx)
	bz := store.Get(listingKey(listingID))
	if bz == nil {
		return nil, types.ErrListingNotFound
	}
	var listing types.Listing
	if err := json.Unmarshal(bz, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingsByScope returns all open listings for a scope
func (k *Keeper) GetListingsByScope(ctx sdk.Context, scope string) []*types.Listing {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, ListingKeyPrefix)
	defer iterator.Close()

	var listings []*types.Listing
	for ; iterator.Valid(); iterator.Next() {
		var listing types.Listing
		if err := json.Unmarshal(iterator.Value(), &listing); err != nil {
			continue
		}
		if listing.Scope == scope && listing.Status == types.ListingStatusOpen {
			listings = append(listings, &listing)
		}
	}
	return listings
}
