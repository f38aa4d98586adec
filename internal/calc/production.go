package calc

import (
	"fmt"
	"math"
	"sort"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// DeriveProduction turns cumulative flowmeter totals into daily production.
// The first day produces 0; each later day produces the positive difference
// to the previous reading. A counter reset yields 0 for that day. The monthly
// cumulative restarts on the first reading of each calendar month.
func DeriveProduction(series []domain.FlowmeterReading) ([]domain.DailyProduction, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 flowmeter readings, have %d", domain.ErrPrecondition, len(series))
	}

	ordered := make([]domain.FlowmeterReading, len(series))
	copy(ordered, series)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReadingDate.Before(ordered[j].ReadingDate.Time)
	})

	rows := make([]domain.DailyProduction, 0, len(ordered))
	var total, month float64
	for i, r := range ordered {
		var produced float64
		if i > 0 {
			produced = roundFloat(math.Max(r.Value-ordered[i-1].Value, 0), 3)
		}

		if i == 0 || !r.ReadingDate.SameMonth(ordered[i-1].ReadingDate) {
			month = produced
		} else {
			month = roundFloat(month+produced, 3)
		}
		total = roundFloat(total+produced, 3)

		rows = append(rows, domain.DailyProduction{
			ProductionDate:  r.ReadingDate,
			Value:           produced,
			CumulativeMonth: month,
			CumulativeTotal: total,
		})
	}

	return rows, nil
}

// SumProduction adds up the production values of a set of readings.
func SumProduction(readings []domain.Reading) float64 {
	var sum float64
	for _, r := range readings {
		sum += r.Production
	}
	return roundFloat(sum, 3)
}
