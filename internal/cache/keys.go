package cache

import (
	"fmt"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/google/uuid"
)

const keyPrefix = "sleepjournal"

// InitialGeneration versions a user's summaries until their first invalidation.
const InitialGeneration = "0"

// GenerationKey holds the token that versions one user's cached summaries.
// Replacing the token orphans every summary written under the old one.
func GenerationKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:summary:%s:gen", keyPrefix, userID)
}

// SummaryKey is the cache key of one user's summary for a period.
func SummaryKey(userID uuid.UUID, generation string, period analytics.Period) string {
	return fmt.Sprintf("%s:summary:%s:%s:%s", keyPrefix, userID, generation, period)
}

// SummaryKeys lists the summary keys of every period for a user.
func SummaryKeys(userID uuid.UUID, generation string) []string {
	periods := []analytics.Period{
		analytics.PeriodDay,
		analytics.PeriodWeek,
		analytics.PeriodMonth,
		analytics.PeriodYear,
		analytics.PeriodAll,
	}
	keys := make([]string, len(periods))
	for i, p := range periods {
		keys[i] = SummaryKey(userID, generation, p)
	}
	return keys
}
