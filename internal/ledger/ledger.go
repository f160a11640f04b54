// Package ledger holds the expenses entered during one session.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/internal/models"
)

// Ledger is the session-scoped expense list.
// It is safe for concurrent use; each session owns exactly one Ledger.
type Ledger struct {
	mu       sync.Mutex
	expenses []models.Expense
	now      func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{now: time.Now}
}

// AddExpense validates amount and appends a new expense with a fresh ID.
func (l *Ledger) AddExpense(description string, amount float64) (models.Expense, error) {
	if err := calculator.ValidateAmount(amount); err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		ID:          uuid.New().String(),
		Description: description,
		Amount:      amount,
		CreatedAt:   l.now().Unix(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append(l.expenses, expense)
	return expense, nil
}

// RemoveExpense deletes the expense with id. Unknown IDs are ignored;
// the return value only reports whether anything was removed.
func (l *Ledger) RemoveExpense(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			return true
		}
	}
	return false
}

// Expenses returns a copy of the expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Len returns the number of expenses.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.expenses)
}

// ComputeSplit sums the expenses in insertion order and divides by participantCount.
// It does not modify the ledger.
func (l *Ledger) ComputeSplit(participantCount int) (models.SplitResult, error) {
	l.mu.Lock()
	amounts := make([]float64, len(l.expenses))
	for i, e := range l.expenses {
		amounts[i] = e.Amount
	}
	l.mu.Unlock()

	return calculator.CalculateSplit(amounts, participantCount)
}
