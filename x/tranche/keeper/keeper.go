package keeper

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	"github.com/openrwa/rwa-chain/x/tranche/types"
)

// Store key prefixes
var (
	TrancheKeyPrefix     = []byte{0x01}
	PoolTrancheKeyPrefix = []byte{0x02}
)

// BankKeeper is the expected bank keeper. Tranche share tokens are minted
// and burned through the module account.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

// RoleKeeper is the expected role keeper
type RoleKeeper interface {
	HasRole(ctx sdk.Context, addr, role string) bool
}

// Keeper manages tranches and their running totals
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	roleKeeper RoleKeeper
	logger     log.Logger
}

// NewKeeper creates a new tranche keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	roleKeeper RoleKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		roleKeeper: roleKeeper,
		logger:     logger.With("module", "x/tranche"),
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

func trancheKey(trancheID string) []byte {
	return append(TrancheKeyPrefix, []byte(trancheID)...)
}

func poolTrancheKey(poolID, trancheID string) []byte {
	return append(PoolTrancheKeyPrefix, []byte(poolID+":"+trancheID)...)
}

// SetTranche stores a tranche and its pool index entry
func (k *Keeper) SetTranche(ctx sdk.Context, tranche *types.Tranche) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(tranche)
	store.Set(trancheKey(tranche.TrancheID), bz)
	store.Set(poolTrancheKey(tranche.PoolID, tranche.TrancheID), []byte(tranche.TrancheID))
}

// GetTranche retrieves a tranche by ID
func (k *Keeper) GetTranche(ctx sdk.Context, trancheID string) (*types.Tranche, error) {
	store := k.GetStore(ctx)
	bz := store.Get(trancheKey(trancheID))
	if bz == nil {
		return nil, types.ErrTrancheNotFound
	}
	var tranche types.Tranche
	if err := json.Unmarshal(bz, &tranche); err != nil {
		return nil, err
	}
	return &tranche, nil
}

// HasTranche reports whether a tranche exists
func (k *Keeper) HasTranche(ctx sdk.Context, trancheID string) bool {
	return k.GetStore(ctx).Has(trancheKey(trancheID))
}

// TokenDenom returns the share token denom of a tranche
func (k *Keeper) TokenDenom(ctx sdk.Context, trancheID string) (string, error) {
	tranche, err := k.GetTranche(ctx, trancheID)
	if err != nil {
		return "", err
	}
	return tranche.TokenDenom, nil
}

// GetTranchesByPool returns a pool's tranches ordered by seniority,
// most senior first.
func (k *Keeper) GetTranchesByPool(ctx sdk.Context, poolID string) []*types.Tranche {
	store := k.GetStore(ctx)
	prefix := append(PoolTrancheKeyPrefix, []byte(poolID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var tranches []*types.Tranche
	for ; iterator.Valid(); iterator.Next() {
		tranche, err := k.GetTranche(ctx, string(iterator.Value()))
		if err != nil {
			continue
		}
		tranches = append(tranches, tranche)
	}

	sort.Slice(tranches, func(i, j int) bool {
		return tranches[i].SeniorityRank < tranches[j].SeniorityRank
	})
	return tranches
}

// SplitSum returns the current basis-point sum across a pool's tranches
func (k *Keeper) SplitSum(ctx sdk.Context, poolID string) int64 {
	sum := int64(0)
	for _, t := range k.GetTranchesByPool(ctx, poolID) {
		sum += t.PercentageBps
	}
	return sum
}

// CreateTranche registers a new tranche for a pool. The caller must hold
// the MANAGER role. A pool's splits may never exceed 10000 bps, and once
// they reach exactly 10000 the pool's tranche set is sealed.
func (k *Keeper) CreateTranche(ctx sdk.Context, creator, poolID, class string, percentageBps, expectedYieldBps int64, tokenSymbol string) (*types.Tranche, error) {
	if !k.roleKeeper.HasRole(ctx, creator, rolestypes.RoleManager) {
		return nil, types.ErrUnauthorized
	}
	if !types.ValidClass(class) {
		return nil, types.ErrInvalidClass
	}
	if expectedYieldBps < 0 {
		return nil, types.ErrInvalidYield
	}

	sum := k.SplitSum(ctx, poolID)
	if sum == types.BpsDenominator {
		return nil, types.ErrInvalidSplit
	}
	if percentageBps <= 0 || sum+percentageBps > types.BpsDenominator {
		return nil, types.ErrInvalidSplit
	}

	tranche := types.NewTranche(poolID, class, percentageBps, expectedYieldBps, tokenSymbol)
	k.SetTranche(ctx, tranche)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"tranche_created",
			sdk.NewAttribute("tranche_id", tranche.TrancheID),
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("class", class),
			sdk.NewAttribute("percentage_bps", math.NewInt(percentageBps).String()),
			sdk.NewAttribute("expected_yield_bps", math.NewInt(expectedYieldBps).String()),
			sdk.NewAttribute("token_denom", tranche.TokenDenom),
		),
	)

	k.logger.Info("Tranche created",
		"tranche_id", tranche.TrancheID,
		"pool_id", poolID,
		"class", class,
		"percentage_bps", percentageBps,
	)

	return tranche, nil
}

// SetTrancheValue re-marks a tranche's redeemable value. Used by the
// settlement engine after a waterfall allocation.
func (k *Keeper) SetTrancheValue(ctx sdk.Context, trancheID string, value math.Int) error {
	tranche, err := k.GetTranche(ctx, trancheID)
	if err != nil {
		return err
	}
	prior := tranche.TotalValue
	tranche.TotalValue = value
	tranche.UpdatedAt = time.Now().Unix()
	k.SetTranche(ctx, tranche)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"tranche_value_marked",
			sdk.NewAttribute("tranche_id", trancheID),
			sdk.NewAttribute("prior_value", prior.String()),
			sdk.NewAttribute("new_value", value.String()),
		),
	)
	return nil
}
