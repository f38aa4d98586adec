package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestAverages(t *testing.T) {
	tds, ph := Averages(nil)
	assert.Zero(t, tds)
	assert.Zero(t, ph)

	tds, ph = Averages([]domain.Reading{{TDS: 30, PH: 7}, {TDS: 40, PH: 7.5}})
	assert.Equal(t, 35.0, tds)
	assert.Equal(t, 7.25, ph)
}

func TestMaintenanceEntries(t *testing.T) {
	readings := []domain.Reading{
		{ReadingDate: day(t, "2025-08-01"), Maintenance: "Backwash multimedia filter"},
		{ReadingDate: day(t, "2025-08-02")},
		{ReadingDate: day(t, "2025-08-03"), Maintenance: "Membrane flush"},
	}
	cartridges := []domain.CartridgeRecord{
		{RecordDate: day(t, "2025-08-02"), DP: 3.2, IsChange: true, ChangeCost: 45, Remarks: "5 micron"},
		{RecordDate: day(t, "2025-08-03"), DP: 1.1},
	}

	entries := MaintenanceEntries(readings, cartridges)

	assert.Equal(t, []domain.MaintenanceEntry{
		{Date: day(t, "2025-08-01"), Source: "Daily log", Details: "Backwash multimedia filter"},
		{Date: day(t, "2025-08-02"), Source: "Cartridge CHANGE", Details: "DP 3.2 bar, cost 45, 5 micron"},
		{Date: day(t, "2025-08-03"), Source: "Daily log", Details: "Membrane flush"},
		{Date: day(t, "2025-08-03"), Source: "Cartridge CHECK", Details: "DP 1.1 bar"},
	}, entries)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatAmount(1234.5, 2))
	assert.Equal(t, "1,000", FormatAmount(1000, 2))
	assert.Equal(t, "-1,234,567.89", FormatAmount(-1234567.891, 2))
	assert.Equal(t, "999", FormatAmount(999.4, 0))
	assert.Equal(t, "0", FormatAmount(-0.001, 2))
	assert.Equal(t, "12.05", FormatAmount(12.049, 2))
}
