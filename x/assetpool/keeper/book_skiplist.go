package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/huandu/skiplist"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// priceKeyAsc is a comparator for ascending price order
type priceKeyAsc struct{}

func (k priceKeyAsc) Compare(lhs, rhs interface{}) int {
	l := lhs.(math.Int)
	r := rhs.(math.Int)
	if l.LT(r) {
		return -1
	}
	if l.GT(r) {
		return 1
	}
	return 0
}

func (k priceKeyAsc) CalcScore(key interface{}) float64 {
	f, _ := new(big.Float).SetInt(key.(math.Int).BigInt()).Float64()
	return f
}

// SkipListListingBook indexes open listings with one skip list per scope,
// ascending by price. O(log n) insert/remove with the cheapest listing at
// the front.
type SkipListListingBook struct {
	mu     sync.RWMutex
	scopes map[string]*skiplist.SkipList
}

// NewSkipListListingBook creates an empty book
func NewSkipListListingBook() *SkipListListingBook {
	return &SkipListListingBook{scopes: make(map[string]*skiplist.SkipList)}
}

func (b *SkipListListingBook) side(scope string) *skiplist.SkipList {
	list, ok := b.scopes[scope]
	if !ok {
		list = skiplist.New(priceKeyAsc{})
		b.scopes[scope] = list
	}
	return list
}

// Add inserts an open listing
func (b *SkipListListingBook) Add(listing *types.Listing) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.side(listing.Scope)
	elem := list.Get(listing.PricePerShare)
	if elem == nil {
		level := newPriceLevel(listing.PricePerShare)
		level.add(listing)
		list.Set(listing.PricePerShare, level)
		return
	}
	elem.Value.(*priceLevel).add(listing)
}

// Remove deletes a listing, dropping its price level when it empties
func (b *SkipListListingBook) Remove(listing *types.Listing) *types.Listing {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, ok := b.scopes[listing.Scope]
	if !ok {
		return nil
	}
	elem := list.Get(listing.PricePerShare)
	if elem == nil {
		return nil
	}
	level := elem.Value.(*priceLevel)
	removed := level.remove(listing.ListingID)
	if level.empty() {
		list.Remove(listing.PricePerShare)
	}
	return removed
}

// Cheapest returns the lowest-priced open listing for a scope
func (b *SkipListListingBook) Cheapest(scope string) *types.Listing {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list, ok := b.scopes[scope]
	if !ok {
		return nil
	}
	elem := list.Front()
	if elem == nil {
		return nil
	}
	level := elem.Value.(*priceLevel)
	if level.empty() {
		return nil
	}
	return level.listings[0]
}

// Iterate walks listings ascending by price, arrival order within a level
func (b *SkipListListingBook) Iterate(scope string, fn func(listing *types.Listing) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list, ok := b.scopes[scope]
	if !ok {
		return
	}
	for elem := list.Front(); elem != nil; elem = elem.Next() {
		for _, listing := range elem.Value.(*priceLevel).listings {
			if !fn(listing) {
				return
			}
		}
	}
}

// Len returns the number of open listings for a scope
func (b *SkipListListingBook) Len(scope string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list, ok := b.scopes[scope]
	if !ok {
		return 0
	}
	n := 0
	for elem := list.Front(); elem != nil; elem = elem.Next() {
		n += len(elem.Value.(*priceLevel).listings)
	}
	return n
}

// Clear drops every scope
func (b *SkipListListingBook) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scopes = make(map[string]*skiplist.SkipList)
}
