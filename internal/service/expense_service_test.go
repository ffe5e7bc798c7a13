package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpense(t *testing.T) {
	c := setupTestServer(t, "USD")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob", "Charlie")

	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Title:          "Dinner",
		Amount:         "12.5",
		PayerID:        ids[0],
		ParticipantIDs: ids,
		Category:       "Food",
	}))
	require.NoError(t, err)

	e := resp.Msg.Expense
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, group.ID, e.GroupID)
	assert.Equal(t, "Dinner", e.Title)
	assert.Equal(t, "12.50", e.Amount)
	assert.Equal(t, ids[0], e.PayerID)
	assert.Equal(t, ids, e.ParticipantIDs)
	assert.Equal(t, "food", e.Category)
	assert.Equal(t, "Food & drink", e.CategoryLabel)
	assert.NotEmpty(t, e.CategoryIcon)
	assert.NotZero(t, e.CreatedAt)
}

func TestCreateExpense_Defaults(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice")

	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Amount:         "800",
		PayerID:        ids[0],
		ParticipantIDs: ids,
		Category:       "souvenirs",
	}))
	require.NoError(t, err)
	assert.Equal(t, defaultExpenseTitle, resp.Msg.Expense.Title)
	assert.Equal(t, "other", resp.Msg.Expense.Category)
	assert.Equal(t, "800", resp.Msg.Expense.Amount)
}

func TestCreateExpense_Invalid(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob")

	tests := []struct {
		name         string
		groupID      string
		amount       string
		payer        string
		participants []string
		code         connect.Code
	}{
		{name: "zero amount", amount: "0", payer: ids[0], participants: ids, code: connect.CodeInvalidArgument},
		{name: "negative amount", amount: "-100", payer: ids[0], participants: ids, code: connect.CodeInvalidArgument},
		{name: "not a number", amount: "ten", payer: ids[0], participants: ids, code: connect.CodeInvalidArgument},
		{name: "fractional yen", amount: "10.5", payer: ids[0], participants: ids, code: connect.CodeInvalidArgument},
		{name: "no participants", amount: "100", payer: ids[0], code: connect.CodeInvalidArgument},
		{name: "missing payer", amount: "100", participants: ids, code: connect.CodeInvalidArgument},
		{name: "duplicate participant", amount: "100", payer: ids[0], participants: []string{ids[0], ids[0]}, code: connect.CodeInvalidArgument},
		{name: "payer not a member", amount: "100", payer: "stranger", participants: ids, code: connect.CodeInvalidArgument},
		{name: "participant not a member", amount: "100", payer: ids[0], participants: []string{ids[1], "stranger"}, code: connect.CodeInvalidArgument},
		{name: "unknown group", groupID: "missing", amount: "100", payer: ids[0], participants: ids, code: connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groupID := tt.groupID
			if groupID == "" {
				groupID = group.ID
			}
			_, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
				GroupID:        groupID,
				Amount:         tt.amount,
				PayerID:        tt.payer,
				ParticipantIDs: tt.participants,
			}))
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}

	list, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&ListExpensesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Expenses, "rejected expenses must not be stored")
}

func TestGetExpense(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob")
	other, _ := createGroup(t, c, "Other", "Carol")

	created, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Title:          "Taxi",
		Amount:         "2400",
		PayerID:        ids[1],
		ParticipantIDs: ids,
		Category:       "transport",
	}))
	require.NoError(t, err)

	resp, err := c.expenses.GetExpense(context.Background(), connect.NewRequest(&GetExpenseRequest{
		GroupID:   group.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, created.Msg.Expense, resp.Msg.Expense)

	// Expenses are scoped to their group.
	_, err = c.expenses.GetExpense(context.Background(), connect.NewRequest(&GetExpenseRequest{
		GroupID:   other.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestListExpenses(t *testing.T) {
	c := setupTestServer(t, "USD")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob")

	for _, e := range []struct{ title, amount string }{
		{"Lunch", "20"},
		{"Train tickets", "35.50"},
		{"Late lunch", "9.99"},
	} {
		_, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
			GroupID:        group.ID,
			Title:          e.title,
			Amount:         e.amount,
			PayerID:        ids[0],
			ParticipantIDs: ids,
		}))
		require.NoError(t, err)
	}

	resp, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&ListExpensesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Expenses, 3)
	assert.Equal(t, "65.49", resp.Msg.Total)

	// Newest first
	assert.Equal(t, "Late lunch", resp.Msg.Expenses[0].Title)
	assert.Equal(t, "Lunch", resp.Msg.Expenses[2].Title)

	filtered, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&ListExpensesRequest{
		GroupID: group.ID,
		Query:   "LUNCH",
	}))
	require.NoError(t, err)
	require.Len(t, filtered.Msg.Expenses, 2)
	assert.Equal(t, "29.99", filtered.Msg.Total)

	empty, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&ListExpensesRequest{
		GroupID: group.ID,
		Query:   "hotel",
	}))
	require.NoError(t, err)
	assert.Empty(t, empty.Msg.Expenses)
	assert.Equal(t, "0.00", empty.Msg.Total)
}

func TestListExpenses_UnknownGroup(t *testing.T) {
	c := setupTestServer(t, "JPY")

	_, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&ListExpensesRequest{GroupID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestUpdateExpense(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob", "Charlie")

	created, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Title:          "Hotel",
		Amount:         "30000",
		PayerID:        ids[0],
		ParticipantIDs: ids,
		Category:       "lodging",
	}))
	require.NoError(t, err)

	resp, err := c.expenses.UpdateExpense(context.Background(), connect.NewRequest(&UpdateExpenseRequest{
		GroupID:        group.ID,
		ExpenseID:      created.Msg.Expense.ID,
		Title:          "Hotel (2 nights)",
		Amount:         "60000",
		PayerID:        ids[1],
		ParticipantIDs: ids[1:],
		Category:       "lodging",
	}))
	require.NoError(t, err)
	assert.Equal(t, created.Msg.Expense.ID, resp.Msg.Expense.ID)
	assert.Equal(t, created.Msg.Expense.CreatedAt, resp.Msg.Expense.CreatedAt)

	got, err := c.expenses.GetExpense(context.Background(), connect.NewRequest(&GetExpenseRequest{
		GroupID:   group.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Hotel (2 nights)", got.Msg.Expense.Title)
	assert.Equal(t, "60000", got.Msg.Expense.Amount)
	assert.Equal(t, ids[1], got.Msg.Expense.PayerID)
	assert.Equal(t, ids[1:], got.Msg.Expense.ParticipantIDs)
}

func TestUpdateExpense_Errors(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice", "Bob")

	created, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Amount:         "1000",
		PayerID:        ids[0],
		ParticipantIDs: ids,
	}))
	require.NoError(t, err)

	_, err = c.expenses.UpdateExpense(context.Background(), connect.NewRequest(&UpdateExpenseRequest{
		GroupID:        group.ID,
		ExpenseID:      "missing",
		Amount:         "1000",
		PayerID:        ids[0],
		ParticipantIDs: ids,
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = c.expenses.UpdateExpense(context.Background(), connect.NewRequest(&UpdateExpenseRequest{
		GroupID:        group.ID,
		ExpenseID:      created.Msg.Expense.ID,
		Amount:         "0",
		PayerID:        ids[0],
		ParticipantIDs: ids,
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	// The failed update left the expense untouched.
	got, err := c.expenses.GetExpense(context.Background(), connect.NewRequest(&GetExpenseRequest{
		GroupID:   group.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, "1000", got.Msg.Expense.Amount)
}

func TestDeleteExpense(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Trip", "Alice")

	created, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Amount:         "500",
		PayerID:        ids[0],
		ParticipantIDs: ids,
	}))
	require.NoError(t, err)

	_, err = c.expenses.DeleteExpense(context.Background(), connect.NewRequest(&DeleteExpenseRequest{
		GroupID:   group.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	require.NoError(t, err)

	_, err = c.expenses.DeleteExpense(context.Background(), connect.NewRequest(&DeleteExpenseRequest{
		GroupID:   group.ID,
		ExpenseID: created.Msg.Expense.ID,
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestCreateExpense_GroupTotalTooLarge(t *testing.T) {
	c := setupTestServer(t, "JPY")
	group, ids := createGroup(t, c, "Whales", "Alice", "Bob")

	var first string
	for i := range 12 {
		resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
			GroupID:        group.ID,
			Amount:         "1000000000000",
			PayerID:        ids[0],
			ParticipantIDs: []string{ids[1]},
		}))
		require.NoError(t, err, "expense %d", i)
		if i == 0 {
			first = resp.Msg.Expense.ID
		}
	}

	_, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&CreateExpenseRequest{
		GroupID:        group.ID,
		Amount:         "1000000000000",
		PayerID:        ids[0],
		ParticipantIDs: []string{ids[1]},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	// Replacing an expense does not count its old amount twice.
	_, err = c.expenses.UpdateExpense(context.Background(), connect.NewRequest(&UpdateExpenseRequest{
		GroupID:        group.ID,
		ExpenseID:      first,
		Amount:         "1000000000000",
		PayerID:        ids[1],
		ParticipantIDs: []string{ids[0]},
	}))
	require.NoError(t, err)

	s, err := c.settlements.GetSettlement(context.Background(), connect.NewRequest(&GetSettlementRequest{
		GroupID: group.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, []*Transfer{
		{FromID: ids[1], FromName: "Bob", ToID: ids[0], ToName: "Alice", Amount: "10000000000000"},
	}, s.Msg.Transfers)
}
