package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/splitpay/internal/models"
)

// DefaultParticipantCount is used when the participant count is missing,
// non-numeric or zero. The current user always counts as one participant.
const DefaultParticipantCount = 1

// ParseParticipantCount turns user input into a participant count.
// Empty, non-numeric and zero input fall back to DefaultParticipantCount.
// Negative numbers are returned unchanged so the split reports them.
func ParseParticipantCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n == 0 {
		return DefaultParticipantCount
	}
	return n
}

// ParseAmount turns user input into an expense amount.
// Unlike the participant count there is no default: malformed input is an error.
func ParseAmount(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, models.NewValidationError("amount", "required")
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, models.NewValidationError("amount", "%q is not a number", text)
	}
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// ValidateAmount checks that amount is a finite, non-negative number.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.NewValidationError("amount", "must be a finite number")
	}
	if amount < 0 {
		return models.NewValidationError("amount", "must not be negative, got %v", amount)
	}
	return nil
}
