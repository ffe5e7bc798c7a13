package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExpense(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr bool
	}{
		{
			name:    "valid",
			expense: Expense{Amount: 900, PayerID: "a", Participants: []string{"a", "b", "c"}},
		},
		{
			name:    "payer need not participate",
			expense: Expense{Amount: 900, PayerID: "a", Participants: []string{"b"}},
		},
		{
			name:    "zero amount",
			expense: Expense{Amount: 0, PayerID: "a", Participants: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "negative amount",
			expense: Expense{Amount: -100, PayerID: "a", Participants: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "amount too large",
			expense: Expense{Amount: MaxAmount + 1, PayerID: "a", Participants: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "no participants",
			expense: Expense{Amount: 100, PayerID: "a"},
			wantErr: true,
		},
		{
			name:    "missing payer",
			expense: Expense{Amount: 100, Participants: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "duplicate participant",
			expense: Expense{Amount: 100, PayerID: "a", Participants: []string{"a", "b", "a"}},
			wantErr: true,
		},
		{
			name:    "empty participant id",
			expense: Expense{Amount: 100, PayerID: "a", Participants: []string{"a", ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpense(tt.expense)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpense)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateExpenses_ReportsEveryBadRecord(t *testing.T) {
	err := ValidateExpenses([]Expense{
		{Amount: 100, PayerID: "a", Participants: []string{"a"}},
		{Amount: 0, PayerID: "a", Participants: []string{"a"}},
		{Amount: 100, PayerID: "a"},
	})

	assert.ErrorIs(t, err, ErrInvalidExpense)
	assert.Contains(t, err.Error(), "expense 1")
	assert.Contains(t, err.Error(), "expense 2")
	assert.NotContains(t, err.Error(), "expense 0")

	var joined interface{ Unwrap() []error }
	if assert.True(t, errors.As(err, &joined)) {
		assert.Len(t, joined.Unwrap(), 2)
	}
}

func TestValidateExpenses_Empty(t *testing.T) {
	assert.NoError(t, ValidateExpenses(nil))
}

func maxExpenses(n int) []Expense {
	expenses := make([]Expense, n)
	for i := range expenses {
		expenses[i] = Expense{Amount: MaxAmount, PayerID: "A", Participants: []string{"B"}}
	}
	return expenses
}

func TestValidateExpenses_TotalTooLarge(t *testing.T) {
	// 13 maximal expenses would wrap a Balance around; 12 still fit.
	require.NoError(t, ValidateExpenses(maxExpenses(12)))

	err := ValidateExpenses(maxExpenses(13))
	assert.ErrorIs(t, err, ErrTotalTooLarge)
	assert.ErrorIs(t, err, ErrInvalidExpense)
	assert.Contains(t, err.Error(), "expense 12")
}

func TestAggregate_LargestValidTotal(t *testing.T) {
	expenses := maxExpenses(12)
	require.NoError(t, ValidateExpenses(expenses))

	balances := Aggregate([]string{"A", "B"}, expenses)
	assert.Equal(t, (12 * MaxAmount).Balance(), balances["A"])
	assert.Equal(t, []Transfer{{From: "B", To: "A", Amount: 12 * MaxAmount}}, Plan(balances))
}

func TestCheckTotal(t *testing.T) {
	assert.NoError(t, CheckTotal())
	assert.NoError(t, CheckTotal(MaxTotal))
	assert.NoError(t, CheckTotal(MaxTotal-1, 1))
	assert.ErrorIs(t, CheckTotal(MaxTotal, 1), ErrTotalTooLarge)
	assert.ErrorIs(t, CheckTotal(MaxAmount, MaxTotal), ErrTotalTooLarge)
}
