package models

// Expense is one payment a member fronted for some participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is a short description, e.g. "Dinner".
	Title string

	// Amount is the cost in the smallest unit of the group's currency.
	Amount int64

	// PayerID is the member who paid.
	PayerID string

	// ParticipantIDs are the members who share the cost equally.
	ParticipantIDs []string

	Category Category

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
