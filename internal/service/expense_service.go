package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

const defaultExpenseTitle = "Expense"

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store    storage.Store
	currency calculator.Currency
}

// NewExpenseService creates an ExpenseService that reads and writes amounts
// in the given currency.
func NewExpenseService(store storage.Store, currency calculator.Currency) *ExpenseService {
	return &ExpenseService{store: store, currency: currency}
}

// CreateExpense records a new expense for a group.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	expense, err := s.buildExpense(ctx, req.Msg.GroupID, "", expenseInput{
		Title:          req.Msg.Title,
		Amount:         req.Msg.Amount,
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: req.Msg.ParticipantIDs,
		Category:       req.Msg.Category,
	})
	if err != nil {
		slog.Warn("CreateExpense rejected", "group_id", req.Msg.GroupID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense created", "group_id", expense.GroupID, "expense_id", expense.ID)

	return connect.NewResponse(&CreateExpenseResponse{
		Expense: toExpenseMessage(expense, s.currency),
	}), nil
}

// GetExpense retrieves one expense of a group.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&GetExpenseResponse{
		Expense: toExpenseMessage(expense, s.currency),
	}), nil
}

// ListExpenses returns a group's expenses, newest first, and their total.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	slog.Info("ListExpenses request received",
		"group_id", req.Msg.GroupID,
		"query", req.Msg.Query,
	)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, storeError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Msg.Query))
	msgs := make([]*Expense, 0, len(expenses))
	var total calculator.Amount
	for _, e := range expenses {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		msgs = append(msgs, toExpenseMessage(e, s.currency))
		total += calculator.Amount(e.Amount)
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(msgs))

	return connect.NewResponse(&ListExpensesResponse{
		Expenses: msgs,
		Total:    total.String(s.currency),
	}), nil
}

// UpdateExpense replaces the editable fields of an expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received",
		"group_id", req.Msg.GroupID,
		"expense_id", req.Msg.ExpenseID,
	)

	existing, err := s.store.GetExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}

	expense, err := s.buildExpense(ctx, req.Msg.GroupID, existing.ID, expenseInput{
		Title:          req.Msg.Title,
		Amount:         req.Msg.Amount,
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: req.Msg.ParticipantIDs,
		Category:       req.Msg.Category,
	})
	if err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, err
	}
	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)

	return connect.NewResponse(&UpdateExpenseResponse{
		Expense: toExpenseMessage(expense, s.currency),
	}), nil
}

// DeleteExpense removes one expense of a group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received",
		"group_id", req.Msg.GroupID,
		"expense_id", req.Msg.ExpenseID,
	)

	if err := s.store.DeleteExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}

type expenseInput struct {
	Title          string
	Amount         string
	PayerID        string
	ParticipantIDs []string
	Category       string
}

// buildExpense validates in against the group's current members and returns
// the expense to store. replacing names the expense being updated, whose old
// amount no longer counts toward the group total. Errors are already Connect
// errors.
func (s *ExpenseService) buildExpense(ctx context.Context, groupID, replacing string, in expenseInput) (*models.Expense, error) {
	amount, err := calculator.ParseAmount(in.Amount, s.currency)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	calc := calculator.Expense{
		Amount:       amount,
		PayerID:      in.PayerID,
		Participants: in.ParticipantIDs,
	}
	if err := calculator.ValidateExpense(calc); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, storeError(err)
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := checkMembership(members, calc); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	existing, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}
	amounts := make([]calculator.Amount, 0, len(existing)+1)
	for _, e := range existing {
		if e.ID != replacing {
			amounts = append(amounts, calculator.Amount(e.Amount))
		}
	}
	if err := calculator.CheckTotal(append(amounts, amount)...); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultExpenseTitle
	}

	return &models.Expense{
		GroupID:        groupID,
		Title:          title,
		Amount:         int64(amount),
		PayerID:        calc.PayerID,
		ParticipantIDs: calc.Participants,
		Category:       models.ParseCategory(in.Category),
	}, nil
}

var errNotMember = errors.New("not a member of the group")

func checkMembership(members []*models.Member, e calculator.Expense) error {
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}

	var errs []error
	if !known[e.PayerID] {
		errs = append(errs, fmt.Errorf("payer %q: %w", e.PayerID, errNotMember))
	}
	for _, p := range e.Participants {
		if !known[p] {
			errs = append(errs, fmt.Errorf("participant %q: %w", p, errNotMember))
		}
	}
	return errors.Join(errs...)
}
