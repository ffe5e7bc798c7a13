package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SubUnits is the number of Balance sub-units in one Amount unit.
// 720720 is divisible by every integer from 1 to 16, so equal splits among
// groups of up to 16 participants are exact.
const SubUnits = 720720

// MaxAmount bounds a single expense.
const MaxAmount Amount = 1_000_000_000_000

// MaxTotal bounds the sum of all expense amounts aggregated together. Every
// balance and share is at most MaxTotal in sub-units, so it fits in a Balance.
const MaxTotal Amount = math.MaxInt64 / SubUnits

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value counted in the smallest unit of the group's
// currency (yen for JPY, cents for USD).
type Amount int64

// Balance is a signed net balance in sub-units of Amount.
// Positive = owed money, Negative = owes money.
type Balance int64

// Balance converts a to sub-units.
func (a Amount) Balance() Balance {
	return Balance(a) * SubUnits
}

// Decimal returns a in the currency's major unit (e.g. 1250 cents -> 12.50).
func (a Amount) Decimal(c Currency) decimal.Decimal {
	return decimal.New(int64(a), -c.Exponent)
}

// String formats a with exactly the currency's number of decimal places.
func (a Amount) String(c Currency) string {
	return a.Decimal(c).StringFixed(c.Exponent)
}

// Decimal returns b in the currency's major unit, keeping four digits below
// the smallest currency unit.
func (b Balance) Decimal(c Currency) decimal.Decimal {
	units := decimal.NewFromInt(int64(b)).DivRound(decimal.NewFromInt(SubUnits), 4)
	return units.Shift(-c.Exponent)
}

// Currency describes how amounts of one currency are written as decimal text.
type Currency struct {
	Code     string
	Exponent int32 // digits after the decimal point, 0 for JPY, 2 for USD
}

var currencies = map[string]Currency{
	"JPY": {Code: "JPY", Exponent: 0},
	"KRW": {Code: "KRW", Exponent: 0},
	"USD": {Code: "USD", Exponent: 2},
	"EUR": {Code: "EUR", Exponent: 2},
	"GBP": {Code: "GBP", Exponent: 2},
	"CNY": {Code: "CNY", Exponent: 2},
	"TWD": {Code: "TWD", Exponent: 2},
}

// LookupCurrency returns the currency with the given ISO 4217 code.
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, fmt.Errorf("unsupported currency %q", code)
	}
	return c, nil
}

// ParseAmount converts decimal text such as "1200" or "12.50" into an Amount
// in c's smallest unit. Only positive values with no more decimal places than
// the currency allows are accepted.
func ParseAmount(s string, c Currency) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}

	minor := d.Shift(c.Exponent)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places for %s", ErrInvalidAmount, s, c.Exponent, c.Code)
	}
	if minor.GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, fmt.Errorf("%w: %q exceeds the maximum expense amount", ErrInvalidAmount, s)
	}

	return Amount(minor.IntPart()), nil
}
