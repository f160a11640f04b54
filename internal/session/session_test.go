package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/dispatch"
)

type recordingGauge struct {
	values []float64
}

func (g *recordingGauge) Set(v float64) { g.values = append(g.values, v) }

func newTestManager(ttl time.Duration, gauge Gauge) (*Manager, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(dispatch.Config{}, ttl, gauge)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManager_CreateGetEnd(t *testing.T) {
	gauge := &recordingGauge{}
	m, _ := newTestManager(time.Hour, gauge)

	s := m.Create()
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Ledger)
	require.NotNil(t, s.Dispatcher)
	require.Equal(t, 1, s.Participants())
	require.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	require.NoError(t, m.End(s.ID))
	require.Equal(t, 0, m.Len())

	_, err = m.Get(s.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.End(s.ID), ErrNotFound)

	require.Equal(t, []float64{1, 0}, gauge.values)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m, _ := newTestManager(0, nil)

	a := m.Create()
	b := m.Create()
	require.NotEqual(t, a.ID, b.ID)

	_, err := a.Ledger.AddExpense("Lunch", 300)
	require.NoError(t, err)
	require.Equal(t, 1, a.Ledger.Len())
	require.Equal(t, 0, b.Ledger.Len())
}

func TestSession_SetParticipants(t *testing.T) {
	m, _ := newTestManager(0, nil)
	s := m.Create()

	tests := []struct {
		text string
		want int
	}{
		{"3", 3},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{" 4 ", 4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, s.SetParticipants(tt.text), tt.text)
		require.Equal(t, tt.want, s.Participants(), tt.text)
	}
}

func TestManager_Sweep(t *testing.T) {
	m, now := newTestManager(time.Hour, nil)

	stale := m.Create()
	*now = now.Add(45 * time.Minute)
	fresh := m.Create()

	*now = now.Add(30 * time.Minute)
	require.Equal(t, 1, m.Sweep(*now))

	_, err := m.Get(stale.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID)
	require.NoError(t, err)
}

func TestManager_SweepDisabled(t *testing.T) {
	m, now := newTestManager(0, nil)
	m.Create()
	require.Equal(t, 0, m.Sweep(now.Add(24*time.Hour)))
	require.Equal(t, 1, m.Len())
}
