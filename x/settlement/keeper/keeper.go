package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	"github.com/openrwa/rwa-chain/x/settlement/types"
	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"
)

// Store key prefixes
var (
	SettlementKeyPrefix = []byte{0x01}
)

// BankKeeper is the expected bank keeper
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

// RoleKeeper is the expected role keeper
type RoleKeeper interface {
	HasRole(ctx sdk.Context, addr, role string) bool
}

// PoolKeeper is the expected pool keeper
type PoolKeeper interface {
	GetPool(ctx sdk.Context, poolID string) (*pooltypes.Pool, error)
	SetPool(ctx sdk.Context, pool *pooltypes.Pool)
	SetPoolPhase(ctx sdk.Context, poolID, phase string) error
	PaymentDenom() string
}

// TrancheKeeper is the expected tranche keeper
type TrancheKeeper interface {
	GetTranchesByPool(ctx sdk.Context, poolID string) []*tranchetypes.Tranche
	SetTrancheValue(ctx sdk.Context, trancheID string, value math.Int) error
}

// Keeper manages payment recording and yield distribution
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	bankKeeper    BankKeeper
	roleKeeper    RoleKeeper
	poolKeeper    PoolKeeper
	trancheKeeper TrancheKeeper
	logger        log.Logger
}

// NewKeeper creates a new settlement keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	roleKeeper RoleKeeper,
	poolKeeper PoolKeeper,
	trancheKeeper TrancheKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		bankKeeper:    bankKeeper,
		roleKeeper:    roleKeeper,
		poolKeeper:    poolKeeper,
		trancheKeeper: trancheKeeper,
		logger:        logger.With("module", "x/settlement"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func settlementKey(poolID string) []byte {
	return append(SettlementKeyPrefix, []byte(poolID)...)
}

// SetSettlement stores a settlement record
func (k *Keeper) SetSettlement(ctx sdk.Context, settlement *types.Settlement) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(settlement)
	store.Set(settlementKey(settlement.PoolID), bz)
}

// GetSettlement retrieves a pool's settlement record, returning a zeroed
// record when none exists yet.
func (k *Keeper) GetSettlement(ctx sdk.Context, poolID string) *types.Settlement {
	store := k.GetStore(ctx)
	bz := store.Get(settlementKey(poolID))
	if bz == nil {
		return types.NewSettlement(poolID)
	}
	var settlement types.Settlement
	if err := json.Unmarshal(bz, &settlement); err != nil {
		return types.NewSettlement(poolID)
	}
	return &settlement
}
