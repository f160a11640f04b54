package models

// Expense represents a single shared expense entered during a session.
// It is created on submission and never modified afterwards; removal is by ID.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is free text entered by the user (e.g., "Lunch", "Cab").
	Description string

	// Amount is the non-negative value of the expense in INR.
	Amount float64

	// CreatedAt is the Unix timestamp when the expense was added.
	CreatedAt int64
}

// SplitResult is the even split of the session's expenses.
// It is derived from the current expense list and never cached.
type SplitResult struct {
	// Total is the sum of all expense amounts, summed in insertion order.
	Total float64

	// PerPerson is Total / ParticipantCount at full precision.
	PerPerson float64

	// ParticipantCount is the count the split was computed for.
	ParticipantCount int
}
