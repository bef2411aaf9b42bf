package types

import (
	"testing"

	"cosmossdk.io/math"
)

func TestSharesForDepositBootstrap(t *testing.T) {
	// First deposit into an empty scope issues shares 1:1
	shares, err := SharesForDeposit(math.NewInt(7000), math.ZeroInt(), math.ZeroInt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shares.Equal(math.NewInt(7000)) {
		t.Errorf("bootstrap shares = %s, want 7000", shares)
	}
}

func TestSharesForDepositProRata(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		totalValue  int64
		totalShares int64
		want        int64
	}{
		{"equal value and shares", 1000, 5000, 5000, 1000},
		{"appreciated scope dilutes entrant", 1000, 6000, 5000, 833},
		{"depreciated scope favors entrant", 1000, 4000, 5000, 1250},
		{"floors toward zero", 1000, 3000, 1000, 333},
		{"tiny deposit floors to zero", 1, 5000, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SharesForDeposit(math.NewInt(tt.amount), math.NewInt(tt.totalValue), math.NewInt(tt.totalShares))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !shares.Equal(math.NewInt(tt.want)) {
				t.Errorf("shares = %s, want %d", shares, tt.want)
			}
		})
	}
}

func TestSharesForDepositRejectsZeroAmount(t *testing.T) {
	if _, err := SharesForDeposit(math.ZeroInt(), math.NewInt(100), math.NewInt(100)); err != ErrInvalidAmount {
		t.Errorf("zero deposit error = %v, want ErrInvalidAmount", err)
	}
	if _, err := SharesForDeposit(math.NewInt(-5), math.NewInt(100), math.NewInt(100)); err != ErrInvalidAmount {
		t.Errorf("negative deposit error = %v, want ErrInvalidAmount", err)
	}
}

func TestPayoutForShares(t *testing.T) {
	payout, err := PayoutForShares(math.NewInt(500), math.NewInt(10300), math.NewInt(10000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !payout.Equal(math.NewInt(515)) {
		t.Errorf("payout = %s, want 515", payout)
	}
}

func TestPayoutForSharesEmptyScope(t *testing.T) {
	if _, err := PayoutForShares(math.NewInt(100), math.ZeroInt(), math.ZeroInt()); err != ErrDivisionByZero {
		t.Errorf("empty scope error = %v, want ErrDivisionByZero", err)
	}
}

func TestPayoutForSharesRejectsZeroShares(t *testing.T) {
	if _, err := PayoutForShares(math.ZeroInt(), math.NewInt(100), math.NewInt(100)); err != ErrInvalidAmount {
		t.Errorf("zero shares error = %v, want ErrInvalidAmount", err)
	}
}

// TestLedgerNoDeficit verifies flooring never pays out more value than the
// scope holds across a spread of redemption ratios.
func TestLedgerNoDeficit(t *testing.T) {
	totalValue := math.NewInt(999983)
	totalShares := math.NewInt(31417)

	for _, redeem := range []int64{1, 7, 100, 5000, 31416, 31417} {
		payout, err := PayoutForShares(math.NewInt(redeem), totalValue, totalShares)
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", redeem, err)
		}
		if payout.GT(totalValue) {
			t.Errorf("redeem %d: payout %s exceeds total value %s", redeem, payout, totalValue)
		}
		// Exact proportional claim never exceeded
		exact := math.NewInt(redeem).Mul(totalValue)
		if payout.Mul(totalShares).GT(exact) {
			t.Errorf("redeem %d: payout %s exceeds proportional claim", redeem, payout)
		}
	}
}

// TestLedgerProportionality: a later entrant into an appreciated scope
// never receives more shares than an earlier equal deposit.
func TestLedgerProportionality(t *testing.T) {
	first, err := SharesForDeposit(math.NewInt(1000), math.ZeroInt(), math.ZeroInt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Scope appreciates before the second deposit
	totalValue := math.NewInt(1100)
	totalShares := first

	second, err := SharesForDeposit(math.NewInt(1000), totalValue, totalShares)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.GT(first) {
		t.Errorf("later entrant received %s shares, earlier received %s", second, first)
	}
}
