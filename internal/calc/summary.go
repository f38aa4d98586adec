package calc

import "github.com/omarembaby39-afk/UMQASR-RO/internal/domain"

// Averages returns the mean TDS and pH of the readings, 0 when empty.
func Averages(readings []domain.Reading) (avgTDS, avgPH float64) {
	if len(readings) == 0 {
		return 0, 0
	}
	var tds, ph float64
	for _, r := range readings {
		tds += r.TDS
		ph += r.PH
	}
	n := float64(len(readings))
	return Round2(tds / n), Round2(ph / n)
}

// MaintenanceEntries collects days with maintenance notes and cartridge
// actions, in date order with readings before cartridge lines on the same day.
func MaintenanceEntries(readings []domain.Reading, cartridges []domain.CartridgeRecord) []domain.MaintenanceEntry {
	var entries []domain.MaintenanceEntry
	ri, ci := 0, 0
	for ri < len(readings) || ci < len(cartridges) {
		takeReading := ci >= len(cartridges) ||
			(ri < len(readings) && !readings[ri].ReadingDate.After(cartridges[ci].RecordDate.Time))

		if takeReading {
			r := readings[ri]
			ri++
			if r.Maintenance == "" {
				continue
			}
			entries = append(entries, domain.MaintenanceEntry{Date: r.ReadingDate, Source: "Daily log", Details: r.Maintenance})
			continue
		}

		c := cartridges[ci]
		ci++
		entries = append(entries, domain.MaintenanceEntry{
			Date:    c.RecordDate,
			Source:  "Cartridge " + c.Action(),
			Details: cartridgeDetails(c),
		})
	}
	return entries
}

func cartridgeDetails(c domain.CartridgeRecord) string {
	details := "DP " + formatBar(c.DP)
	if c.IsChange && c.ChangeCost > 0 {
		details += ", cost " + formatMoney(c.ChangeCost)
	}
	if c.Remarks != "" {
		details += ", " + c.Remarks
	}
	return details
}
