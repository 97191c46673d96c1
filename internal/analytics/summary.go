package analytics

import (
	"sort"
	"time"
)

// StageBucket holds stage durations for one row of a stage chart: a single
// night for day/week/month views, a calendar month for the year view.
type StageBucket struct {
	Label     string                  `json:"label"`
	Start     time.Time               `json:"start"`
	Nights    int                     `json:"nights"`
	Durations map[Stage]time.Duration `json:"durations"`
}

// Summary is the aggregate of all records in a period.
type Summary struct {
	Period          Period                  `json:"period"`
	Empty           bool                    `json:"empty"`
	From            time.Time               `json:"from"`
	To              time.Time               `json:"to"`
	Nights          int                     `json:"nights"`
	AverageScore    int                     `json:"average_score"`
	AverageDuration time.Duration           `json:"average_duration"`
	AverageBedtime  *TimeOfDay              `json:"average_bedtime"`
	AverageWakeTime *TimeOfDay              `json:"average_wake_time"`
	BedtimeSpread   time.Duration           `json:"bedtime_spread"`
	WakeTimeSpread  time.Duration           `json:"wake_time_spread"`
	StageTotals     map[Stage]time.Duration `json:"stage_totals"`
	StageBreakdown  []StageBucket           `json:"stage_breakdown"`
}

// EmptySummary is the placeholder returned when a period has no records.
func EmptySummary(period Period) Summary {
	return Summary{
		Period:         period,
		Empty:          true,
		StageTotals:    map[Stage]time.Duration{},
		StageBreakdown: []StageBucket{},
	}
}

// WindowStart returns the inclusive lower bound of period ending at now.
// Months and years are subtracted on the calendar; when the target month is
// shorter the day is clamped to its last day (Mar 31 - 1 month = Feb 28/29).
// PeriodAll has no lower bound and returns the zero time.
func WindowStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return subtractMonths(now, 1)
	case PeriodYear:
		return subtractMonths(now, 12)
	default:
		return time.Time{}
	}
}

func subtractMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month-time.Month(months), 1, 0, 0, 0, 0, t.Location())

	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// Filter keeps the records whose interval starts within [from, to].
func Filter(records []Record, from, to time.Time) []Record {
	var out []Record
	for _, r := range records {
		start := r.Interval.Start
		if start.Before(from) || start.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize aggregates the records that started inside period's window
// ending at now.
func Summarize(records []Record, period Period, now time.Time) Summary {
	from := WindowStart(period, now)
	summary := Aggregate(Filter(records, from, now), period)
	summary.From = from
	summary.To = now
	return summary
}

// Aggregate reduces records to a Summary without any window filtering.
func Aggregate(records []Record, period Period) Summary {
	if len(records) == 0 {
		return EmptySummary(period)
	}

	summary := Summary{
		Period:      period,
		Nights:      len(records),
		StageTotals: make(map[Stage]time.Duration, len(AllStages)),
	}

	var (
		scoreSum    int
		durationSum time.Duration
		starts      = make([]time.Time, 0, len(records))
		ends        = make([]time.Time, 0, len(records))
	)
	for _, r := range records {
		scoreSum += r.Score
		durationSum += r.Interval.Duration()
		starts = append(starts, r.Interval.Start)
		ends = append(ends, r.Interval.End)

		for stage, d := range r.StageDurations() {
			summary.StageTotals[stage] += d
		}
	}

	n := len(records)
	summary.AverageScore = scoreSum / n
	summary.AverageDuration = durationSum / time.Duration(n)

	if bed, ok := AverageTimeOfDay(starts); ok {
		summary.AverageBedtime = &bed
	}
	if wake, ok := AverageTimeOfDay(ends); ok {
		summary.AverageWakeTime = &wake
	}
	summary.BedtimeSpread, _ = TimeOfDaySpread(starts)
	summary.WakeTimeSpread, _ = TimeOfDaySpread(ends)

	if period == PeriodYear {
		summary.StageBreakdown = monthlyBreakdown(records)
	} else {
		summary.StageBreakdown = nightlyBreakdown(records)
	}

	return summary
}

func nightlyBreakdown(records []Record) []StageBucket {
	buckets := make([]StageBucket, 0, len(records))
	for _, r := range records {
		buckets = append(buckets, StageBucket{
			Label:     r.Interval.Start.Format("2006-01-02"),
			Start:     r.Interval.Start,
			Nights:    1,
			Durations: r.StageDurations(),
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// monthlyBreakdown groups records by calendar month and reports each stage as
// a per-night average, so months with more logged nights don't dominate.
func monthlyBreakdown(records []Record) []StageBucket {
	byMonth := make(map[string]*StageBucket)
	for _, r := range records {
		start := r.Interval.Start
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		label := month.Format("2006-01")

		bucket, ok := byMonth[label]
		if !ok {
			bucket = &StageBucket{
				Label:     label,
				Start:     month,
				Durations: make(map[Stage]time.Duration, len(AllStages)),
			}
			byMonth[label] = bucket
		}

		bucket.Nights++
		for stage, d := range r.StageDurations() {
			bucket.Durations[stage] += d
		}
	}

	buckets := make([]StageBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		for _, stage := range AllStages {
			bucket.Durations[stage] /= time.Duration(bucket.Nights)
		}
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}
