package rules

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitQuantity_ThreeWorkers(t *testing.T) {
	shares, err := SplitQuantity(10, 3)

	require.NoError(t, err)
	assert.Equal(t, []float64{3.33, 3.33, 3.34}, shares)
}

func TestSplitQuantity_SumsExactly(t *testing.T) {
	cases := []struct {
		total float64
		n     int
	}{
		{10, 3},
		{50, 1},
		{0, 4},
		{100, 7},
		{1.01, 2},
		{999.99, 6},
	}

	for _, tc := range cases {
		shares, err := SplitQuantity(tc.total, tc.n)
		require.NoError(t, err)
		require.Len(t, shares, tc.n)

		sum := 0.0
		for _, s := range shares {
			sum += s
		}
		assert.InDelta(t, tc.total, sum, 1e-9, "total=%v n=%d", tc.total, tc.n)

		// Первые n-1 долей — ровное деление, округлённое до сотых
		per := Round2(tc.total / float64(tc.n))
		for i := 0; i < tc.n-1; i++ {
			assert.Equal(t, per, shares[i])
		}
	}
}

func TestSplitQuantity_EmptyGroup(t *testing.T) {
	_, err := SplitQuantity(10, 0)
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, StatusDone, ResolveStatus(50, 50))
	assert.Equal(t, StatusOver, ResolveStatus(60, 50))
	assert.Equal(t, StatusStarted, ResolveStatus(10, 50))
	assert.Equal(t, StatusDone, ResolveStatus(0, 0))
}

func TestFormatDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// 59 секунд — ещё ноль минут
	assert.Equal(t, "00:00", FormatDuration(start, start.Add(59*time.Second)))
	assert.Equal(t, "00:01", FormatDuration(start, start.Add(61*time.Second)))
	assert.Equal(t, "01:30", FormatDuration(start, start.Add(90*time.Minute)))
	assert.Equal(t, "25:15", FormatDuration(start, start.Add(25*time.Hour+15*time.Minute)))

	// Часы назад не уходим
	assert.Equal(t, "00:00", FormatDuration(start, start.Add(-time.Hour)))
}

func TestMinutesFromClock(t *testing.T) {
	m, err := MinutesFromClock("01:30")
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	m, err = MinutesFromClock("")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = MinutesFromClock("abc")
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.33, Round2(10.0/3.0))
	assert.Equal(t, 2.5, Round2(100.0/40.0))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}
