package analytics

import (
	"math"
	"time"
)

const minutesPerDay = 1440

// AverageTimeOfDay returns the circular mean of the clock times in ts.
//
// Only hour and minute are used, read in whatever location each timestamp
// carries. Times are placed on a 24h circle so that 23:30 and 00:30 average
// to 00:00 rather than 12:00. When the vectors cancel out exactly the angle
// is taken as 0, i.e. 00:00. The second result is false for empty input.
func AverageTimeOfDay(ts []time.Time) (TimeOfDay, bool) {
	x, y, ok := meanVector(ts)
	if !ok {
		return TimeOfDay{}, false
	}

	angle := 0.0
	if x != 0 || y != 0 {
		angle = math.Atan2(y, x)
	}
	if angle < 0 {
		angle += 2 * math.Pi
	}

	// Truncate to whole minutes; the nudge keeps float noise from turning
	// 07:13 into 07:12.
	minutes := int(angle/(2*math.Pi)*minutesPerDay + 1e-9)
	return TimeOfDayFromMinutes(minutes), true
}

// TimeOfDaySpread returns the circular standard deviation of the clock times
// in ts, expressed as a duration on the clock face.
func TimeOfDaySpread(ts []time.Time) (time.Duration, bool) {
	x, y, ok := meanVector(ts)
	if !ok {
		return 0, false
	}

	r := math.Hypot(x, y)
	if r >= 1 {
		return 0, true
	}
	if r <= 0 {
		// Uniform spread; the deviation is unbounded, cap at half a day.
		return 12 * time.Hour, true
	}

	radians := math.Sqrt(-2 * math.Log(r))
	minutes := radians / (2 * math.Pi) * minutesPerDay
	if minutes > minutesPerDay/2 {
		minutes = minutesPerDay / 2
	}
	return time.Duration(minutes * float64(time.Minute)).Round(time.Second), true
}

func meanVector(ts []time.Time) (x, y float64, ok bool) {
	if len(ts) == 0 {
		return 0, 0, false
	}

	for _, t := range ts {
		minutes := float64(t.Hour()*60 + t.Minute())
		angle := minutes / minutesPerDay * 2 * math.Pi
		x += math.Cos(angle)
		y += math.Sin(angle)
	}

	n := float64(len(ts))
	x, y = x/n, y/n

	// Sums of cos/sin for symmetric inputs land a few ulps off zero.
	const eps = 1e-12
	if math.Abs(x) < eps {
		x = 0
	}
	if math.Abs(y) < eps {
		y = 0
	}
	return x, y, true
}
