package keeper

import (
	"encoding/json"
	"time"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/roles/types"
)

// Store key prefixes
var (
	GrantKeyPrefix = []byte{0x01}
)

// Keeper manages capability grants
type Keeper struct {
	cdc       codec.BinaryCodec
	storeKey  storetypes.StoreKey
	logger    log.Logger
	authority string
}

// NewKeeper creates a new roles keeper. The authority address holds every
// role implicitly and is the only address that can grant roles before any
// ADMIN grant exists.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
		logger:    logger.With("module", "x/roles"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the genesis authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func grantKey(addr, role string) []byte {
	return append(GrantKeyPrefix, []byte(addr+":"+role)...)
}

// HasRole reports whether the address holds the given role. The genesis
// authority holds every role.
func (k *Keeper) HasRole(ctx sdk.Context, addr, role string) bool {
	if addr == k.authority && addr != "" {
		return true
	}
	return k.GetStore(ctx).Has(grantKey(addr, role))
}

// GrantRole assigns a role to an address. Only the genesis authority or an
// ADMIN may grant.
func (k *Keeper) GrantRole(ctx sdk.Context, granter, addr, role string) (*types.Grant, error) {
	if !types.ValidRole(role) {
		return nil, types.ErrUnknownRole
	}
	if !k.HasRole(ctx, granter, types.RoleAdmin) {
		return nil, types.ErrUnauthorized
	}
	store := k.GetStore(ctx)
	key := grantKey(addr, role)
	if store.Has(key) {
		return nil, types.ErrGrantExists
	}

	grant := &types.Grant{
		Address:   addr,
		Role:      role,
		GrantedBy: granter,
		GrantedAt: time.Now().Unix(),
	}
	bz, _ := json.Marshal(grant)
	store.Set(key, bz)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"roles_granted",
			sdk.NewAttribute("address", addr),
			sdk.NewAttribute("role", role),
			sdk.NewAttribute("granted_by", granter),
		),
	)

	k.logger.Info("Role granted", "address", addr, "role", role, "granted_by", granter)
	return grant, nil
}

// RevokeRole removes a role from an address. Only the genesis authority or
// an ADMIN may revoke.
func (k *Keeper) RevokeRole(ctx sdk.Context, revoker, addr, role string) error {
	if !types.ValidRole(role) {
		return types.ErrUnknownRole
	}
	if !k.HasRole(ctx, revoker, types.RoleAdmin) {
		return types.ErrUnauthorized
	}
	store := k.GetStore(ctx)
	key := grantKey(addr, role)
	if !store.Has(key) {
		return types.ErrGrantMissing
	}
	store.Delete(key)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"roles_revoked",
			sdk.NewAttribute("address", addr),
			sdk.NewAttribute("role", role),
			sdk.NewAttribute("revoked_by", revoker),
		),
	)

	k.logger.Info("Role revoked", "address", addr, "role", role, "revoked_by", revoker)
	return nil
}

// GetGrants returns all grants for an address
func (k *Keeper) GetGrants(ctx sdk.Context, addr string) []*types.Grant {
	store := k.GetStore(ctx)
	prefix := append(GrantKeyPrefix, []byte(addr+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var grants []*types.Grant
	for ; iterator.Valid(); iterator.Next() {
		var grant types.Grant
		if err := json.Unmarshal(iterator.Value(), &grant); err != nil {
			continue
		}
		grants = append(grants, &grant)
	}
	return grants
}
