package calculator

// MemberTotals is one member's position after aggregation.
type MemberTotals struct {
	Paid  Amount  // Total fronted across all expenses
	Share Balance // Total of this member's shares, in sub-units

	// Waived is the part of Paid, in sub-units, that was owed by members
	// who have since been removed. Nobody repays it.
	Waived Balance
}

// Net returns what the member is owed (positive) or owes (negative).
func (t MemberTotals) Net() Balance {
	return t.Paid.Balance() - t.Waived - t.Share
}

// Summary is the result of aggregating a group's expenses.
type Summary struct {
	Totals map[string]MemberTotals

	// Skipped counts expenses that contributed nothing because their payer
	// or all of their participants are no longer members.
	Skipped int
}

// Balances returns the net balance of every member.
func (s Summary) Balances() map[string]Balance {
	balances := make(map[string]Balance, len(s.Totals))
	for id, t := range s.Totals {
		balances[id] = t.Net()
	}
	return balances
}

// Aggregate computes the net balance of every member from a set of expenses.
// See AggregateExpenses for the rules.
func Aggregate(members []string, expenses []Expense) map[string]Balance {
	return AggregateExpenses(members, expenses).Balances()
}

// AggregateExpenses reduces expenses to per-member totals.
//
// Every id in members gets an entry, even without expenses. For each expense
// the payer is credited the full amount and every participant is charged an
// equal share; a payer who also participates nets amount minus their share.
//
// Ids missing from members (deleted members) contribute nothing. The amount
// is still divided among all listed participants, so the remaining members'
// shares do not grow; the share of a deleted participant is waived from the
// payer's credit instead. An expense whose payer is deleted is skipped, as is
// one whose participants are all deleted. Either way every expense adds
// exactly zero to the sum of all balances.
//
// Expenses must have passed ValidateExpenses, which also keeps the sums
// within range. The result does not depend on the order of expenses.
func AggregateExpenses(members []string, expenses []Expense) Summary {
	totals := make(map[string]MemberTotals, len(members))
	for _, id := range members {
		totals[id] = MemberTotals{}
	}

	skipped := 0
	for _, e := range expenses {
		payer, known := totals[e.PayerID]
		if !known || !anyKnown(totals, e.Participants) {
			skipped++
			continue
		}

		payer.Paid += e.Amount
		totals[e.PayerID] = payer

		for p, share := range splitShares(e.Amount, e.Participants) {
			t, known := totals[p]
			if !known {
				payer := totals[e.PayerID]
				payer.Waived += share
				totals[e.PayerID] = payer
				continue
			}
			t.Share += share
			totals[p] = t
		}
	}

	return Summary{Totals: totals, Skipped: skipped}
}

func anyKnown(totals map[string]MemberTotals, ids []string) bool {
	for _, id := range ids {
		if _, ok := totals[id]; ok {
			return true
		}
	}
	return false
}
