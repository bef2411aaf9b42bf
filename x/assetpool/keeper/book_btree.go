package keeper

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/google/btree"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

const btreeDegree = 32

// priceLevelItem wraps a price level for use in btree.
// Implements btree.Item.
type priceLevelItem struct {
	price math.Int
	level *priceLevel
}

// Less orders items ascending by price
func (a *priceLevelItem) Less(b btree.Item) bool {
	return a.price.LT(b.(*priceLevelItem).price)
}

// BTreeListingBook indexes open listings with one B-tree per scope,
// ascending by price. O(log n) insert/remove, cheapest listing at Min.
type BTreeListingBook struct {
	mu     sync.RWMutex
	scopes map[string]*btree.BTree
}

// NewBTreeListingBook creates an empty book
func NewBTreeListingBook() *BTreeListingBook {
	return &BTreeListingBook{scopes: make(map[string]*btree.BTree)}
}

func (b *BTreeListingBook) side(scope string) *btree.BTree {
	tree, ok := b.scopes[scope]
	if !ok {
		tree = btree.New(btreeDegree)
		b.scopes[scope] = tree
	}
	return tree
}

// Add inserts an open listing
func (b *BTreeListingBook) Add(listing *types.Listing) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tree := b.side(listing.Scope)
	item := tree.Get(&priceLevelItem{price: listing.PricePerShare})
	if item == nil {
		level := newPriceLevel(listing.PricePerShare)
		level.add(listing)
		tree.ReplaceOrInsert(&priceLevelItem{price: listing.PricePerShare, level: level})
		return
	}
	item.(*priceLevelItem).level.add(listing)
}

// Remove deletes a listing, dropping its price level when it empties
func (b *BTreeListingBook) Remove(listing *types.Listing) *types.Listing {
	b.mu.Lock()
	defer b.mu.Unlock()

	tree, ok := b.scopes[listing.Scope]
	if !ok {
		return nil
	}
	item := tree.Get(&priceLevelItem{price: listing.PricePerShare})
	if item == nil {
		return nil
	}
	level := item.(*priceLevelItem).level
	removed := level.remove(listing.ListingID)
	if level.empty() {
		tree.Delete(&priceLevelItem{price: listing.PricePerShare})
	}
	return removed
}

// Cheapest returns the lowest-priced open listing for a scope, oldest
// first within a price level
func (b *BTreeListingBook) Cheapest(scope string) *types.Listing {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tree, ok := b.scopes[scope]
	if !ok {
		return nil
	}
	item := tree.Min()
	if item == nil {
		return nil
	}
	level := item.(*priceLevelItem).level
	if level.empty() {
		return nil
	}
	return level.listings[0]
}

// Iterate walks listings ascending by price, arrival order within a level
func (b *BTreeListingBook) Iterate(scope string, fn func(listing *types.Listing) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tree, ok := b.scopes[scope]
	if !ok {
		return
	}
	tree.Ascend(func(item btree.Item) bool {
		for _, listing := range item.(*priceLevelItem).level.listings {
			if !fn(listing) {
				return false
			}
		}
		return true
	})
}

// Len returns the number of open listings for a scope
func (b *BTreeListingBook) Len(scope string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tree, ok := b.scopes[scope]
	if !ok {
		return 0
	}
	n := 0
	tree.Ascend(func(item btree.Item) bool {
		n += len(item.(*priceLevelItem).level.listings)
		return true
	})
	return n
}

// Clear drops every scope
func (b *BTreeListingBook) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scopes = make(map[string]*btree.BTree)
}
