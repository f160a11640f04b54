package calculator

import (
	"github.com/mmynk/splitpay/internal/models"
)

// Sum adds amounts left to right in the order given.
// Callers pass expenses in insertion order so totals are reproducible.
func Sum(amounts []float64) float64 {
	total := 0.0
	for _, a := range amounts {
		total += a
	}
	return total
}

// CalculateSplit divides the total of amounts evenly across participantCount people.
// Based on the algorithm: per_person = sum(amounts) / participant_count
//
// Values are returned at full precision; rounding belongs to the presentation layer.
func CalculateSplit(amounts []float64, participantCount int) (models.SplitResult, error) {
	if participantCount < 1 {
		return models.SplitResult{}, models.NewValidationError("participant count", "must be at least 1, got %d", participantCount)
	}

	total := Sum(amounts)
	return models.SplitResult{
		Total:            total,
		PerPerson:        total / float64(participantCount),
		ParticipantCount: participantCount,
	}, nil
}
