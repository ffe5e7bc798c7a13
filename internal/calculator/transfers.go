package calculator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrConservationViolation means the balances handed to the planner do not
// sum to zero. Balances produced by Aggregate always do, so this is a bug in
// the caller and the planner panics with it.
var ErrConservationViolation = errors.New("balances do not sum to zero")

// Transfer is a single payment instruction: From pays To the Amount.
type Transfer struct {
	From   string
	To     string
	Amount Amount
}

type position struct {
	id     string
	amount Amount
}

// RoundBalances rounds every balance to whole currency units so that the
// rounded values still sum to zero.
//
// It uses the largest remainder method: every balance is floored, then the
// units needed to bring the total back to zero go to the members with the
// largest fractional remainders, ties broken by ascending id. Each rounded
// value is within one unit of the exact balance; the dropped fraction is
// dust that is never transferred.
//
// Panics with ErrConservationViolation if balances do not sum to zero.
func RoundBalances(balances map[string]Balance) map[string]Amount {
	mustConserve(balances)

	rounded := make(map[string]Amount, len(balances))
	var remainders []position
	var missing Amount

	for id, b := range balances {
		units, rem := floorDiv(b, SubUnits)
		rounded[id] = Amount(units)
		missing -= Amount(units)
		if rem > 0 {
			remainders = append(remainders, position{id: id, amount: Amount(rem)})
		}
	}

	slices.SortFunc(remainders, func(a, b position) int {
		if c := cmp.Compare(b.amount, a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	// missing is the sum of the remainders in whole units, so it is always
	// smaller than len(remainders).
	for i := Amount(0); i < missing; i++ {
		rounded[remainders[i].id]++
	}

	return rounded
}

// Plan returns an ordered list of transfers that settles every balance.
//
// Balances are rounded with RoundBalances and split into creditors (largest
// first) and debtors (largest debt first), ties broken by ascending id. The
// current largest debtor then pays the current largest creditor the smaller
// of the two amounts, and whichever side reaches zero is advanced past. Both
// lists run out together, so the plan has at most creditors+debtors-1
// transfers and never pays a member to themselves.
//
// This greedy matching is not guaranteed to use the fewest possible
// transfers; finding that minimum is NP-hard in general.
//
// Panics with ErrConservationViolation if balances do not sum to zero.
func Plan(balances map[string]Balance) []Transfer {
	rounded := RoundBalances(balances)

	var creditors, debtors []position
	for id, amount := range rounded {
		switch {
		case amount > 0:
			creditors = append(creditors, position{id: id, amount: amount})
		case amount < 0:
			debtors = append(debtors, position{id: id, amount: amount})
		}
	}

	slices.SortFunc(creditors, func(a, b position) int {
		if c := cmp.Compare(b.amount, a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	slices.SortFunc(debtors, func(a, b position) int {
		if c := cmp.Compare(a.amount, b.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	transfers := make([]Transfer, 0, max(0, len(creditors)+len(debtors)-1))
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		pay := min(-debtor.amount, creditor.amount)
		if pay > 0 {
			transfers = append(transfers, Transfer{
				From:   debtor.id,
				To:     creditor.id,
				Amount: pay,
			})
		}

		debtor.amount += pay
		creditor.amount -= pay

		if debtor.amount == 0 {
			i++
		}
		if creditor.amount == 0 {
			j++
		}
	}

	return transfers
}

// ApplyTransfers returns a copy of balances with every transfer paid: the
// payer's balance moves up by the amount and the receiver's moves down.
// Applying Plan's transfers to RoundBalances' output leaves every balance at
// zero.
func ApplyTransfers(balances map[string]Amount, transfers []Transfer) map[string]Amount {
	out := make(map[string]Amount, len(balances))
	for id, amount := range balances {
		out[id] = amount
	}
	for _, t := range transfers {
		out[t.From] += t.Amount
		out[t.To] -= t.Amount
	}
	return out
}

func mustConserve(balances map[string]Balance) {
	var sum Balance
	for _, b := range balances {
		sum += b
	}
	if sum != 0 {
		panic(fmt.Errorf("%w: off by %d sub-units", ErrConservationViolation, sum))
	}
}

// floorDiv divides rounding toward negative infinity; rem is always in [0, d).
func floorDiv(b Balance, d Balance) (Balance, Balance) {
	q, rem := b/d, b%d
	if rem < 0 {
		q--
		rem += d
	}
	return q, rem
}
