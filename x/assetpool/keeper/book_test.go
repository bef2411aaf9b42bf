package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

func makeListing(scope string, price int64) *types.Listing {
	return types.NewListing("pool-1", scope, investorAddr, math.NewInt(100), math.NewInt(price))
}

// Both book implementations must behave identically.
func listingBooks() map[string]ListingBook {
	return map[string]ListingBook{
		"btree":    NewBTreeListingBook(),
		"skiplist": NewSkipListListingBook(),
	}
}

func TestListingBookCheapestFirst(t *testing.T) {
	for name, book := range listingBooks() {
		t.Run(name, func(t *testing.T) {
			book.Add(makeListing("scope-a", 50))
			book.Add(makeListing("scope-a", 10))
			book.Add(makeListing("scope-a", 30))

			cheapest := book.Cheapest("scope-a")
			if cheapest == nil || !cheapest.PricePerShare.Equal(math.NewInt(10)) {
				t.Fatalf("cheapest = %v, want price 10", cheapest)
			}
			if book.Len("scope-a") != 3 {
				t.Errorf("len = %d, want 3", book.Len("scope-a"))
			}
		})
	}
}

func TestListingBookFIFOWithinPriceLevel(t *testing.T) {
	for name, book := range listingBooks() {
		t.Run(name, func(t *testing.T) {
			first := makeListing("scope-a", 20)
			second := makeListing("scope-a", 20)
			book.Add(first)
			book.Add(second)

			if got := book.Cheapest("scope-a"); got.ListingID != first.ListingID {
				t.Error("oldest listing should lead the price level")
			}
			book.Remove(first)
			if got := book.Cheapest("scope-a"); got.ListingID != second.ListingID {
				t.Error("second listing should lead after removal")
			}
		})
	}
}

func TestListingBookRemoveDropsEmptyLevel(t *testing.T) {
	for name, book := range listingBooks() {
		t.Run(name, func(t *testing.T) {
			listing := makeListing("scope-a", 15)
			book.Add(listing)

			removed := book.Remove(listing)
			if removed == nil || removed.ListingID != listing.ListingID {
				t.Fatalf("removed = %v, want the added listing", removed)
			}
			if book.Cheapest("scope-a") != nil {
				t.Error("empty level should have been dropped")
			}
			if book.Remove(listing) != nil {
				t.Error("double remove should return nil")
			}
		})
	}
}

func TestListingBookScopesAreIsolated(t *testing.T) {
	for name, book := range listingBooks() {
		t.Run(name, func(t *testing.T) {
			book.Add(makeListing("scope-a", 10))
			book.Add(makeListing("scope-b", 5))

			if got := book.Cheapest("scope-a"); !got.PricePerShare.Equal(math.NewInt(10)) {
				t.Errorf("scope-a cheapest = %s, want 10", got.PricePerShare)
			}
			if book.Len("scope-b") != 1 {
				t.Errorf("scope-b len = %d, want 1", book.Len("scope-b"))
			}
		})
	}
}

func TestListingBookIterateAscending(t *testing.T) {
	for name, book := range listingBooks() {
		t.Run(name, func(t *testing.T) {
			for _, price := range []int64{40, 10, 30, 20} {
				book.Add(makeListing("scope-a", price))
			}

			var prices []int64
			book.Iterate("scope-a", func(listing *types.Listing) bool {
				prices = append(prices, listing.PricePerShare.Int64())
				return true
			})

			want := []int64{10, 20, 30, 40}
			if len(prices) != len(want) {
				t.Fatalf("iterated %d listings, want %d", len(prices), len(want))
			}
			for i := range want {
				if prices[i] != want[i] {
					t.Errorf("position %d: price %d, want %d", i, prices[i], want[i])
				}
			}
		})
	}
}
