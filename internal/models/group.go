package models

// Group is a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Kyoto Trip").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a person in a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// GroupID is the group this member belongs to.
	GroupID string

	// Name is the display name. Not unique and never used for matching.
	Name string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
