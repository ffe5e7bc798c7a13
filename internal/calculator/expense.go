package calculator

import (
	"errors"
	"fmt"
)

var ErrInvalidExpense = errors.New("invalid expense")

// ErrTotalTooLarge means a set of expenses adds up to more than MaxTotal.
var ErrTotalTooLarge = fmt.Errorf("%w: expenses add up to more than %d", ErrInvalidExpense, MaxTotal)

// Expense is the part of an expense record the aggregator needs.
// Title, category and dates stay with the caller.
type Expense struct {
	Amount       Amount
	PayerID      string
	Participants []string
}

// ValidateExpense rejects an expense that cannot be aggregated: a
// non-positive or oversized amount, a missing payer, no participants, or a
// participant listed twice.
func ValidateExpense(e Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidExpense, e.Amount)
	}
	if e.Amount > MaxAmount {
		return fmt.Errorf("%w: amount %d exceeds maximum %d", ErrInvalidExpense, e.Amount, MaxAmount)
	}
	if e.PayerID == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidExpense)
	}
	if len(e.Participants) == 0 {
		return fmt.Errorf("%w: must have at least one participant", ErrInvalidExpense)
	}

	seen := make(map[string]bool, len(e.Participants))
	for _, p := range e.Participants {
		if p == "" {
			return fmt.Errorf("%w: participant id cannot be empty", ErrInvalidExpense)
		}
		if seen[p] {
			return fmt.Errorf("%w: participant %q listed more than once", ErrInvalidExpense, p)
		}
		seen[p] = true
	}
	return nil
}

// ValidateExpenses checks every expense and reports all failures at once.
// Each error carries the index of the offending record. The amounts of the
// valid expenses must also add up to no more than MaxTotal.
func ValidateExpenses(expenses []Expense) error {
	var errs []error
	var total Amount
	for i, e := range expenses {
		if err := ValidateExpense(e); err != nil {
			errs = append(errs, fmt.Errorf("expense %d: %w", i, err))
			continue
		}
		// Each amount is at most MaxAmount, far below MaxTotal, so the
		// running total cannot overflow before the check fires.
		total += e.Amount
		if total > MaxTotal {
			errs = append(errs, fmt.Errorf("expense %d: %w", i, ErrTotalTooLarge))
			break
		}
	}
	return errors.Join(errs...)
}

// CheckTotal reports ErrTotalTooLarge when amounts add up to more than
// MaxTotal.
func CheckTotal(amounts ...Amount) error {
	var total Amount
	for _, a := range amounts {
		if a > MaxTotal-total {
			return ErrTotalTooLarge
		}
		total += a
	}
	return nil
}
