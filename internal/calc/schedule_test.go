package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestScheduleOccurrences(t *testing.T) {
	start := day(t, "2025-08-01")

	tests := []struct {
		name      string
		interval  int
		daysAhead int
		want      []string
	}{
		{"weekly over 30 days", 7, 30, []string{"2025-08-01", "2025-08-08", "2025-08-15", "2025-08-22", "2025-08-29"}},
		{"window end is inclusive", 10, 30, []string{"2025-08-01", "2025-08-11", "2025-08-21", "2025-08-31"}},
		{"interval longer than window", 90, 30, []string{"2025-08-01"}},
		{"zero window", 7, 0, []string{"2025-08-01"}},
		{"zero interval", 0, 30, []string{}},
		{"negative window", 7, -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateStrings(ScheduleOccurrences(start, tt.interval, tt.daysAhead)))
		})
	}
}

func TestFrequencyOccurrences(t *testing.T) {
	start := day(t, "2025-08-15")

	assert.Equal(t, []string{"2025-08-15", "2025-08-16", "2025-08-17"},
		dateStrings(FrequencyOccurrences(start, domain.FrequencyDaily, 2)))
	assert.Equal(t, []string{"2025-08-15", "2025-08-22"},
		dateStrings(FrequencyOccurrences(start, domain.FrequencyWeekly, 13)))
	assert.Equal(t, []string{"2025-08-15", "2025-09-15"},
		dateStrings(FrequencyOccurrences(start, domain.FrequencyMonthly, 60)))
	assert.Empty(t, FrequencyOccurrences(start, domain.Frequency("hourly"), 60))
}
