package analytics

import "time"

const (
	// DefaultTargetDuration is the sleep duration that scores 100.
	DefaultTargetDuration = 8 * time.Hour

	// pointsPerHour is deducted for every hour away from the target.
	pointsPerHour = 10

	MinScore = 0
	MaxScore = 100
)

// Score maps a sleep duration to a 0-100 quality score.
//
// The penalty 10 x |duration - target| in hours is truncated toward zero
// before it is subtracted, so scores move in whole points every six minutes.
// A non-positive target falls back to DefaultTargetDuration.
func Score(duration, target time.Duration) int {
	if target <= 0 {
		target = DefaultTargetDuration
	}

	diff := duration - target
	if diff < 0 {
		diff = -diff
	}

	penalty := int(diff.Hours() * pointsPerHour)
	return clampScore(MaxScore - penalty)
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Band is one row of the score band table.
type Band struct {
	// Lower is the inclusive lower bound of the band.
	Lower    int
	Label    string
	Emoji    string
	Feedback string
}

// Bands is ordered from the highest lower bound down. Every caller that needs
// a label, emoji or coaching line for a score reads it from here.
var Bands = []Band{
	{
		Lower:    85,
		Label:    "excellent",
		Emoji:    "😃",
		Feedback: "Perfect sleep! Go make the most of your day. 🌟",
	},
	{
		Lower:    75,
		Label:    "good",
		Emoji:    "🙂",
		Feedback: "A solid sleep pattern. Keep this up and you'll feel the difference! 💪",
	},
	{
		Lower:    60,
		Label:    "fair",
		Emoji:    "😐",
		Feedback: "Not bad. How about heading to bed a little earlier tonight? 🌙",
	},
	{
		Lower:    MinScore,
		Label:    "poor",
		Emoji:    "😟",
		Feedback: "Looks like you're short on sleep. Take it easy and rest well today. 😴",
	},
}

// BandFor returns the band a score falls into. Scores outside [0,100] are
// clamped first, so the top band is closed at 100.
func BandFor(score int) Band {
	score = clampScore(score)
	for _, b := range Bands {
		if score >= b.Lower {
			return b
		}
	}
	return Bands[len(Bands)-1]
}
