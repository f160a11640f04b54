package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/models"
)

func TestAddExpense(t *testing.T) {
	l := New()

	lunch, err := l.AddExpense("Lunch", 300)
	require.NoError(t, err)
	cab, err := l.AddExpense("Cab", 150)
	require.NoError(t, err)

	assert.NotEmpty(t, lunch.ID)
	assert.NotEqual(t, lunch.ID, cab.ID)
	assert.NotZero(t, lunch.CreatedAt)

	expenses := l.Expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, "Lunch", expenses[0].Description)
	assert.Equal(t, "Cab", expenses[1].Description)
}

func TestAddExpense_RejectsInvalidAmounts(t *testing.T) {
	l := New()

	for _, amount := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := l.AddExpense("Bad", amount)
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr), "amount %v: expected ValidationError, got %v", amount, err)
	}
	assert.Equal(t, 0, l.Len())
}

func TestAddExpense_ZeroIsAllowed(t *testing.T) {
	l := New()
	_, err := l.AddExpense("Free refill", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestAddExpense_UniqueIDs(t *testing.T) {
	l := New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		e, err := l.AddExpense("Item", float64(i))
		require.NoError(t, err)
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestRemoveExpense_RestoresTotal(t *testing.T) {
	l := New()
	_, err := l.AddExpense("Lunch", 300.10)
	require.NoError(t, err)
	_, err = l.AddExpense("Cab", 150.25)
	require.NoError(t, err)

	before, err := l.ComputeSplit(1)
	require.NoError(t, err)

	snack, err := l.AddExpense("Snacks", 42.42)
	require.NoError(t, err)
	require.True(t, l.RemoveExpense(snack.ID))

	after, err := l.ComputeSplit(1)
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
}

func TestRemoveExpense_UnknownIDIsNoop(t *testing.T) {
	l := New()
	_, err := l.AddExpense("Lunch", 300)
	require.NoError(t, err)

	before := l.Expenses()
	assert.False(t, l.RemoveExpense("nonexistent-id"))
	assert.Equal(t, before, l.Expenses())
}

func TestComputeSplit(t *testing.T) {
	l := New()
	_, err := l.AddExpense("Lunch", 300)
	require.NoError(t, err)
	_, err = l.AddExpense("Cab", 150)
	require.NoError(t, err)

	split, err := l.ComputeSplit(3)
	require.NoError(t, err)
	assert.Equal(t, 450.0, split.Total)
	assert.Equal(t, 150.0, split.PerPerson)
	assert.Equal(t, 3, split.ParticipantCount)
	assert.Equal(t, "150.00", models.FormatAmount(split.PerPerson))

	// Computing does not mutate the ledger
	assert.Equal(t, 2, l.Len())
}

func TestComputeSplit_InvalidCount(t *testing.T) {
	l := New()
	_, err := l.ComputeSplit(0)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "participant count", verr.Field)
}

func TestComputeSplit_ReflectsMutations(t *testing.T) {
	l := New()
	e, err := l.AddExpense("Dinner", 90)
	require.NoError(t, err)

	split, err := l.ComputeSplit(3)
	require.NoError(t, err)
	assert.Equal(t, 30.0, split.PerPerson)

	l.RemoveExpense(e.ID)
	split, err = l.ComputeSplit(3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, split.Total)
}
