package keeper

import (
	"encoding/json"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// ListingBook is an in-memory price index over open share listings, one
// side per scope, ascending by price per share. It is a query-side
// structure rebuilt from the store on restart; the store stays the source
// of truth.
type ListingBook interface {
	Add(listing *types.Listing)
	Remove(listing *types.Listing) *types.Listing
	Cheapest(scope string) *types.Listing
	Iterate(scope string, fn func(listing *types.Listing) bool)
	Len(scope string) int
	Clear()
}

// Verify that all implementations satisfy the interface
var _ ListingBook = (*BTreeListingBook)(nil)
var _ ListingBook = (*SkipListListingBook)(nil)

// priceLevel holds the open listings at one price, in arrival order
type priceLevel struct {
	price    math.Int
	listings []*types.Listing
}

func newPriceLevel(price math.Int) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) add(listing *types.Listing) {
	l.listings = append(l.listings, listing)
}

func (l *priceLevel) remove(listingID string) *types.Listing {
	for i, listing := range l.listings {
		if listing.ListingID == listingID {
			l.listings = append(l.listings[:i], l.listings[i+1:]...)
			return listing
		}
	}
	return nil
}

func (l *priceLevel) empty() bool {
	return len(l.listings) == 0
}

// RebuildBook reloads every open listing from the store into the book.
// Called once at startup; the store stays the source of truth.
func (k *Keeper) RebuildBook(ctx sdk.Context) {
	k.book.Clear()
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, ListingKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var listing types.Listing
		if err := json.Unmarshal(iterator.Value(), &listing); err != nil {
			continue
		}
		if listing.Status == types.ListingStatusOpen {
			l := listing
			k.book.Add(&l)
		}
	}
}
