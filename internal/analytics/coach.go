package analytics

import (
	"fmt"
	"strings"
	"time"
)

const (
	// NoRecordsFeedback is shown before anything has been logged.
	NoRecordsFeedback = "Not enough sleep records yet. Start logging tonight! 🌙"

	improvedAddendum = "You slept much better than last time. Great job! 👏"
	declinedAddendum = "A bit short of last time. Hope you get a more restful night tonight."

	// scoreSwing is the score change that earns an addendum.
	scoreSwing = 10

	// consistentSpread is the bedtime spread still considered regular.
	consistentSpread = 45 * time.Minute
)

// Feedback composes coaching text for the most recent record, comparing it
// with the previous one when there is one.
func Feedback(mostRecent Record, previous *Record) string {
	feedback := BandFor(mostRecent.Score).Feedback
	if previous == nil {
		return feedback
	}

	diff := mostRecent.Score - previous.Score
	switch {
	case diff >= scoreSwing:
		feedback += "\n" + improvedAddendum
	case diff <= -scoreSwing:
		feedback += "\n" + declinedAddendum
	}
	return feedback
}

// WeeklyReport is the rule-based weekly analysis shown when no generated
// report is available.
func WeeklyReport(s Summary, target time.Duration) string {
	if s.Empty {
		return NoRecordsFeedback
	}
	if target <= 0 {
		target = DefaultTargetDuration
	}

	band := BandFor(s.AverageScore)
	lines := []string{
		fmt.Sprintf("Over %d night(s) your average sleep score was %d (%s %s).",
			s.Nights, s.AverageScore, band.Label, band.Emoji),
	}

	gap := s.AverageDuration - target
	switch {
	case gap <= -30*time.Minute:
		lines = append(lines, fmt.Sprintf("You slept %s on average, %s short of your %s goal.",
			FormatDuration(s.AverageDuration), FormatDuration(-gap), FormatDuration(target)))
	case gap >= 30*time.Minute:
		lines = append(lines, fmt.Sprintf("You slept %s on average, %s over your %s goal.",
			FormatDuration(s.AverageDuration), FormatDuration(gap), FormatDuration(target)))
	default:
		lines = append(lines, fmt.Sprintf("You slept %s on average, right around your %s goal.",
			FormatDuration(s.AverageDuration), FormatDuration(target)))
	}

	if s.AverageBedtime != nil && s.AverageWakeTime != nil {
		lines = append(lines, fmt.Sprintf("You typically went to bed at %s and woke up at %s.",
			FormatClock(*s.AverageBedtime), FormatClock(*s.AverageWakeTime)))
	}

	if s.Nights > 1 {
		if s.BedtimeSpread <= consistentSpread {
			lines = append(lines, "Your bedtime was nicely consistent.")
		} else {
			lines = append(lines, fmt.Sprintf("Your bedtime varied by about %s; a steadier schedule may help.",
				FormatDuration(s.BedtimeSpread)))
		}
	}

	if deep, total := s.StageTotals[StageDeep], stageSum(s.StageTotals); total > 0 {
		lines = append(lines, fmt.Sprintf("Deep sleep made up %d%% of your tracked sleep.",
			int(deep*100/total)))
	}

	lines = append(lines, band.Feedback)
	return strings.Join(lines, "\n")
}

func stageSum(totals map[Stage]time.Duration) time.Duration {
	var sum time.Duration
	for _, d := range totals {
		sum += d
	}
	return sum
}
