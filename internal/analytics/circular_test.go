package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestAverageTimeOfDay(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		want  TimeOfDay
	}{
		{
			name:  "wraps around midnight",
			times: []time.Time{clock(23, 30), clock(0, 30)},
			want:  TimeOfDay{Hour: 0, Minute: 0},
		},
		{
			name:  "late and early bedtimes",
			times: []time.Time{clock(22, 0), clock(2, 0)},
			want:  TimeOfDay{Hour: 0, Minute: 0},
		},
		{
			name:  "single time is its own mean",
			times: []time.Time{clock(7, 13)},
			want:  TimeOfDay{Hour: 7, Minute: 13},
		},
		{
			name:  "daytime values behave linearly",
			times: []time.Time{clock(6, 0), clock(8, 0)},
			want:  TimeOfDay{Hour: 7, Minute: 0},
		},
		{
			name:  "opposite times cancel to midnight",
			times: []time.Time{clock(6, 0), clock(18, 0)},
			want:  TimeOfDay{Hour: 0, Minute: 0},
		},
		{
			name:  "uniform spread around the clock",
			times: []time.Time{clock(0, 0), clock(6, 0), clock(12, 0), clock(18, 0)},
			want:  TimeOfDay{Hour: 0, Minute: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AverageTimeOfDay(tt.times)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageTimeOfDay_Empty(t *testing.T) {
	got, ok := AverageTimeOfDay(nil)
	assert.False(t, ok)
	assert.Equal(t, TimeOfDay{}, got)
}

func TestAverageTimeOfDay_IgnoresDate(t *testing.T) {
	times := []time.Time{
		time.Date(2023, 1, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC),
	}
	got, ok := AverageTimeOfDay(times)
	require.True(t, ok)
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 0}, got)
}

func TestAverageTimeOfDay_RotationInvariant(t *testing.T) {
	base := []time.Time{clock(22, 40), clock(23, 55), clock(0, 20), clock(1, 5)}
	want, ok := AverageTimeOfDay(base)
	require.True(t, ok)

	for _, delta := range []time.Duration{37 * time.Minute, 3 * time.Hour, 11*time.Hour + 7*time.Minute, 19 * time.Hour} {
		rotated := make([]time.Time, len(base))
		for i, ts := range base {
			rotated[i] = ts.Add(delta)
		}

		got, ok := AverageTimeOfDay(rotated)
		require.True(t, ok)

		back := TimeOfDayFromMinutes(got.Minutes() - int(delta/time.Minute))
		assert.LessOrEqual(t, circularDistance(back, want), 1, "delta %s: got %s want %s", delta, back, want)
	}
}

func circularDistance(a, b TimeOfDay) int {
	d := a.Minutes() - b.Minutes()
	if d < 0 {
		d = -d
	}
	if d > minutesPerDay/2 {
		d = minutesPerDay - d
	}
	return d
}

func TestTimeOfDaySpread(t *testing.T) {
	spread, ok := TimeOfDaySpread([]time.Time{clock(23, 0), clock(23, 0)})
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), spread)

	narrow, _ := TimeOfDaySpread([]time.Time{clock(23, 0), clock(23, 30)})
	wide, _ := TimeOfDaySpread([]time.Time{clock(21, 0), clock(2, 0)})
	assert.Greater(t, wide, narrow)

	_, ok = TimeOfDaySpread(nil)
	assert.False(t, ok)
}

func TestTimeOfDayFromMinutes(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 0}, TimeOfDayFromMinutes(1440))
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, TimeOfDayFromMinutes(-1))
	assert.Equal(t, "07:05", TimeOfDayFromMinutes(425).String())
}
