package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

// storeError maps a storage error to the matching Connect code.
func storeError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func toGroupMessage(group *models.Group, members []*models.Member) *Group {
	msg := &Group{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
	}
	for _, m := range members {
		msg.Members = append(msg.Members, toMemberMessage(m))
	}
	return msg
}

func toMemberMessage(member *models.Member) *Member {
	return &Member{
		ID:        member.ID,
		Name:      member.Name,
		CreatedAt: member.CreatedAt,
	}
}

func toExpenseMessage(expense *models.Expense, currency calculator.Currency) *Expense {
	return &Expense{
		ID:             expense.ID,
		GroupID:        expense.GroupID,
		Title:          expense.Title,
		Amount:         calculator.Amount(expense.Amount).String(currency),
		PayerID:        expense.PayerID,
		ParticipantIDs: expense.ParticipantIDs,
		Category:       string(expense.Category),
		CategoryLabel:  expense.Category.Label(),
		CategoryIcon:   expense.Category.Icon(),
		CreatedAt:      expense.CreatedAt,
	}
}

// toCalculatorExpense keeps the fields the calculator reads.
func toCalculatorExpense(expense *models.Expense) calculator.Expense {
	return calculator.Expense{
		Amount:       calculator.Amount(expense.Amount),
		PayerID:      expense.PayerID,
		Participants: expense.ParticipantIDs,
	}
}
