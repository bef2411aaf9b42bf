package keeper

import (
	"encoding/json"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	"github.com/openrwa/rwa-chain/x/assetregistry/types"
)

// Store key prefixes
var (
	AssetKeyPrefix = []byte{0x01}
)

// RoleKeeper is the expected role keeper
type RoleKeeper interface {
	HasRole(ctx sdk.Context, addr, role string) bool
}

// Keeper manages the asset registry
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	roleKeeper RoleKeeper
	logger     log.Logger
}

// NewKeeper creates a new assetregistry keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	roleKeeper RoleKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		roleKeeper: roleKeeper,
		logger:     logger.With("module", "x/assetregistry"),
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

func assetKey(assetID string) []byte {
	return append(AssetKeyPrefix, []byte(assetID)...)
}

// SetAsset stores an asset record
func (k *Keeper) SetAsset(ctx sdk.Context, asset *types.Asset) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(asset)
	store.Set(assetKey(asset.AssetID), bz)
}

// GetAsset retrieves an asset by ID
func (k *Keeper) GetAsset(ctx sdk.Context, assetID string) (*types.Asset, error) {
	store := k.GetStore(ctx)
	bz := store.Get(assetKey(assetID))
	if bz == nil {
		return nil, types.ErrAssetNotFound
	}
	var asset types.Asset
	if err := json.Unmarshal(bz, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAllAssets returns every registered asset
func (k *Keeper) GetAllAssets(ctx sdk.Context) []*types.Asset {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, AssetKeyPrefix)
	defer iterator.Close()

	var assets []*types.Asset
	for ; iterator.Valid(); iterator.Next() {
		var asset types.Asset
		if err := json.Unmarshal(iterator.Value(), &asset); err != nil {
			continue
		}
		assets = append(assets, &asset)
	}
	return assets
}

// RegisterAsset records a new asset in PENDING status. The registrant must
// hold the ASSET_CUSTODIAN role and becomes the asset's custodian.
func (k *Keeper) RegisterAsset(ctx sdk.Context, custodian, name, description, category string, valueEstimate math.Int) (*types.Asset, error) {
	if !k.roleKeeper.HasRole(ctx, custodian, rolestypes.RoleAssetCustodian) {
		return nil, types.ErrUnauthorized
	}
	if !types.ValidCategory(category) {
		return nil, types.ErrInvalidCategory
	}
	if !valueEstimate.IsPositive() {
		return nil, types.ErrInvalidValue
	}

	asset := types.NewAsset(custodian, name, description, category, valueEstimate)
	k.SetAsset(ctx, asset)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"asset_registered",
			sdk.NewAttribute("asset_id", asset.AssetID),
			sdk.NewAttribute("custodian", custodian),
			sdk.NewAttribute("category", category),
			sdk.NewAttribute("value_estimate", valueEstimate.String()),
		),
	)

	k.logger.Info("Asset registered", "asset_id", asset.AssetID, "custodian", custodian, "category", category)
	return asset, nil
}

// VerifyAsset moves a PENDING asset to VERIFIED. Requires the MANAGER role.
func (k *Keeper) VerifyAsset(ctx sdk.Context, verifier, assetID string) (*types.Asset, error) {
	if !k.roleKeeper.HasRole(ctx, verifier, rolestypes.RoleManager) {
		return nil, types.ErrUnauthorized
	}
	return k.transition(ctx, assetID, types.AssetStatusVerified, verifier)
}

// SetAssetManaged moves a VERIFIED asset to MANAGED, making it eligible for
// pooling. Only the asset's custodian may do this.
func (k *Keeper) SetAssetManaged(ctx sdk.Context, custodian, assetID string) (*types.Asset, error) {
	asset, err := k.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Custodian != custodian {
		return nil, types.ErrUnauthorized
	}
	return k.transition(ctx, assetID, types.AssetStatusManaged, custodian)
}

// RejectAsset moves a PENDING or VERIFIED asset to REJECTED. Requires the
// MANAGER role.
func (k *Keeper) RejectAsset(ctx sdk.Context, verifier, assetID, reason string) (*types.Asset, error) {
	if !k.roleKeeper.HasRole(ctx, verifier, rolestypes.RoleManager) {
		return nil, types.ErrUnauthorized
	}
	asset, err := k.transition(ctx, assetID, types.AssetStatusRejected, verifier)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		k.logger.Info("Asset rejected", "asset_id", assetID, "reason", reason)
	}
	return asset, nil
}

func (k *Keeper) transition(ctx sdk.Context, assetID, target, actor string) (*types.Asset, error) {
	asset, err := k.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !asset.CanTransitionTo(target) {
		return nil, types.ErrInvalidTransition
	}

	prior := asset.Status
	asset.Status = target
	asset.UpdatedAt = time.Now().Unix()
	if target == types.AssetStatusVerified {
		asset.VerifiedBy = actor
	}
	k.SetAsset(ctx, asset)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"asset_status_changed",
			sdk.NewAttribute("asset_id", assetID),
			sdk.NewAttribute("prior_status", prior),
			sdk.NewAttribute("new_status", target),
			sdk.NewAttribute("actor", actor),
		),
	)

	k.logger.Info("Asset status changed", "asset_id", assetID, "from", prior, "to", target)
	return asset, nil
}

// IsPoolable reports whether an asset exists and is eligible for pooling.
// Used by the pool module before attaching an asset.
func (k *Keeper) IsPoolable(ctx sdk.Context, assetID string) (bool, error) {
	asset, err := k.GetAsset(ctx, assetID)
	if err != nil {
		return false, err
	}
	return asset.IsPoolable(), nil
}
