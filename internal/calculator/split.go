package calculator

import (
	"slices"
)

// splitShares divides amount equally among participants, in sub-units.
// The shares always add up to amount exactly: sub-units left over by the
// integer division go one each to participants in ascending id order.
func splitShares(amount Amount, participants []string) map[string]Balance {
	shares := make(map[string]Balance, len(participants))
	if len(participants) == 0 {
		return shares
	}

	ordered := slices.Clone(participants)
	slices.Sort(ordered)

	total := amount.Balance()
	n := Balance(len(ordered))
	perPerson := total / n
	remainder := total % n

	for i, p := range ordered {
		share := perPerson
		if Balance(i) < remainder {
			share++
		}
		shares[p] = share
	}

	return shares
}
