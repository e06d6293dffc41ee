package kernel

import (
	"fmt"

	"foodcourt/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object for non-negative monetary amounts with two-decimal
// precision. All arithmetic keeps the amount rounded to two decimals, so an
// order total computed as the sum of quantity x unit price always matches the
// persisted numeric(12,2) representation exactly.
//
// The zero value is a valid 0.00 amount.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	total := price.MulQuantity(2).Add(otherPrice) // 25.00
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount, rounding to two decimals.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses a decimal string such as "10.00" into a Money.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns the 0.00 amount.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the sum of two amounts, rounded to two decimals.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// MulQuantity returns the amount multiplied by a whole quantity, rounded to
// two decimals.
func (m Money) MulQuantity(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with exactly two decimals, e.g. "25.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
