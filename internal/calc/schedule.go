package calc

import "github.com/omarembaby39-afk/UMQASR-RO/internal/domain"

// ScheduleOccurrences walks forward from start at a fixed interval and returns
// every date up to and including start+daysAhead. A non-positive interval or
// a negative window yields nothing.
func ScheduleOccurrences(start domain.Date, intervalDays, daysAhead int) []domain.Date {
	if intervalDays <= 0 || daysAhead < 0 {
		return nil
	}

	end := start.AddDays(daysAhead)
	var out []domain.Date
	for due := start; !due.After(end.Time); due = due.AddDays(intervalDays) {
		out = append(out, due)
	}
	return out
}

// FrequencyOccurrences expands an operator task frequency over the window.
// Monthly occurrences are offset from start each time, so a short month only
// shifts its own occurrence.
func FrequencyOccurrences(start domain.Date, freq domain.Frequency, daysAhead int) []domain.Date {
	switch freq {
	case domain.FrequencyDaily:
		return ScheduleOccurrences(start, 1, daysAhead)
	case domain.FrequencyWeekly:
		return ScheduleOccurrences(start, 7, daysAhead)
	case domain.FrequencyMonthly:
		if daysAhead < 0 {
			return nil
		}
		end := start.AddDays(daysAhead)
		var out []domain.Date
		for i := 0; ; i++ {
			due := domain.Date{Time: start.AddDate(0, i, 0)}
			if due.After(end.Time) {
				break
			}
			out = append(out, due)
		}
		return out
	default:
		return nil
	}
}
