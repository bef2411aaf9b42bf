package types

import (
	"cosmossdk.io/math"
)

// Share ledger arithmetic. All quantities are integers in 18-decimal base
// units. Both conversions floor, so the ledger can never pay out more value
// than a scope holds: rounding dust accrues to the remaining holders.

// SharesForDeposit converts a deposit amount into shares to issue against
// the scope's current totals. The first deposit into an empty scope
// bootstraps at 1:1.
func SharesForDeposit(amount, totalValue, totalShares math.Int) (math.Int, error) {
	if !amount.IsPositive() {
		return math.ZeroInt(), ErrInvalidAmount
	}
	if totalShares.IsZero() {
		return amount, nil
	}
	if totalValue.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero
	}
	return amount.Mul(totalShares).Quo(totalValue), nil
}

// PayoutForShares converts redeemed shares into a payout amount against the
// scope's current totals. A scope with no shares outstanding cannot be
// redeemed from.
func PayoutForShares(shares, totalValue, totalShares math.Int) (math.Int, error) {
	if !shares.IsPositive() {
		return math.ZeroInt(), ErrInvalidAmount
	}
	if totalShares.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero
	}
	return shares.Mul(totalValue).Quo(totalShares), nil
}
