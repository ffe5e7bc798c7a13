// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitbill/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the storage operations for groups, members and expenses.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. ID and CreatedAt are filled in when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup renames an existing group.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group with its members and expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember adds a member to an existing group. ID and CreatedAt are
	// filled in when empty.
	AddMember(ctx context.Context, member *models.Member) error

	// ListMembers returns a group's members in the order they were added.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)

	// RemoveMember deletes a member. Expenses that reference the member
	// are kept unchanged.
	RemoveMember(ctx context.Context, groupID, memberID string) error

	// CreateExpense persists a new expense. ID and CreatedAt are filled in
	// when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves one expense of a group.
	GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error)

	// ListExpenses returns a group's expenses, newest first.
	ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// UpdateExpense replaces the editable fields of an existing expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes one expense of a group.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
