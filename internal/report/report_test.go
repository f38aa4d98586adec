package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func sampleMonthlyReport(t *testing.T) *domain.MonthlyReport {
	return &domain.MonthlyReport{
		PlantName: "RO System - Um Qasr Port",
		Year:      2025,
		Month:     8,
		Range:     domain.MonthRange(2025, time.August),
		Readings: []domain.Reading{
			{ReadingDate: mustDate(t, "2025-08-01"), TDS: 32, PH: 7.1, Conductivity: 60, Production: 120},
			{ReadingDate: mustDate(t, "2025-08-02"), TDS: 55, PH: 7.3, Conductivity: 98, Production: 118, Maintenance: "Flushed membranes"},
		},
		AvgTDS:        43.5,
		AvgPH:         7.2,
		Compliance:    domain.Compliance{Percent: 50, InSpec: 1, OutOfSpec: 1},
		OutOfSpecDays: 1,
		ProductionM3:  238,
		Cartridges: []domain.CartridgeRecord{
			{RecordDate: mustDate(t, "2025-08-02"), DP: 4.5, IsChange: true, ChangeCost: 45, Remarks: "Replaced 5 micron set"},
		},
		Cost: domain.CostReport{
			Lines: []domain.CostLine{
				{Chemical: "Antiscalant PC-391", Qty: 4, UnitCost: 3.5, TotalCost: 14, RatePerM3: 0.0168, CostPerM3: 0.0588},
			},
			ChemicalCost:     14,
			CartridgeCost:    45,
			CartridgeChanges: 1,
			TotalCost:        59,
			ProductionM3:     238,
			CostPerM3:        0.25,
		},
	}
}

func TestMonthlyPDF(t *testing.T) {
	out, err := MonthlyPDF(sampleMonthlyReport(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMonthlyPDF_EmptyMonth(t *testing.T) {
	out, err := MonthlyPDF(&domain.MonthlyReport{PlantName: "RO", Year: 2025, Month: 2, Range: domain.MonthRange(2025, time.February)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMaintenancePDF(t *testing.T) {
	entries := make([]domain.MaintenanceEntry, 0, 80)
	for i := 0; i < 80; i++ {
		entries = append(entries, domain.MaintenanceEntry{
			Date:    mustDate(t, "2025-08-01").AddDays(i % 28),
			Source:  "Daily log",
			Details: "Checked high pressure pump seals and cleaned the inlet strainer on the feed line",
		})
	}
	out, err := MaintenancePDF(&domain.MaintenanceReport{
		PlantName: "RO",
		Range:     domain.MonthRange(2025, time.August),
		Entries:   entries,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMonthlyExcel(t *testing.T) {
	out, err := MonthlyExcel(sampleMonthlyReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Readings", "Chemicals", "Cartridge"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "RO System - Um Qasr Port - Monthly Report 2025-08", title)

	header, err := f.GetCellValue("Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Indicator", header)

	date, err := f.GetCellValue("Readings", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-02", date)

	action, err := f.GetCellValue("Cartridge", "B2")
	require.NoError(t, err)
	assert.Equal(t, "CHANGE", action)

	chem, err := f.GetCellValue("Chemicals", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Antiscalant PC-391", chem)
}

func TestProductionExcel(t *testing.T) {
	rows := []domain.DailyProduction{
		{ProductionDate: mustDate(t, "2025-08-02"), Value: 120.5, CumulativeMonth: 120.5, CumulativeTotal: 120.5},
		{ProductionDate: mustDate(t, "2025-08-03"), Value: 99.5, CumulativeMonth: 220, CumulativeTotal: 220},
	}
	out, err := ProductionExcel("RO", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Production"}, f.GetSheetList())
	v, err := f.GetCellValue("Production", "A5")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-03", v)
	v, err = f.GetCellValue("Production", "C5")
	require.NoError(t, err)
	assert.Equal(t, "220", v)
}

func buildLegacyWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadReadingsXLSX(t *testing.T) {
	buf := buildLegacyWorkbook(t, [][]interface{}{
		{"Date", "TDS (ppm)", "pH", "Conductivity", "Production (m3)", "Remarks"},
		{"2025-08-01", 32, 7.1, 60, 120, "ok"},
		{"02/08/2025", "35", "7.0", "", "1,118.5", ""},
		{"not a date", 30, 7, 55, 100, ""},
		{"2025-08-04", 30, 15, 55, 100, ""},
	})

	readings, rowErrs, err := ReadReadingsXLSX(buf)
	require.NoError(t, err)

	require.Len(t, readings, 2)
	assert.Equal(t, "2025-08-01", readings[0].ReadingDate.String())
	assert.Equal(t, 32.0, readings[0].TDS)
	assert.Equal(t, 120.0, readings[0].Production)
	assert.Equal(t, "ok", readings[0].Notes)

	assert.Equal(t, "2025-08-02", readings[1].ReadingDate.String())
	assert.Equal(t, 1118.5, readings[1].Production)
	assert.Equal(t, 0.0, readings[1].Conductivity)

	require.Len(t, rowErrs, 2)
	assert.Equal(t, 4, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "unrecognised date")
	assert.Equal(t, 5, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Reason, "pH")
}

func TestReadReadingsXLSX_MissingDateColumn(t *testing.T) {
	buf := buildLegacyWorkbook(t, [][]interface{}{
		{"TDS", "pH"},
		{30, 7},
	})

	_, _, err := ReadReadingsXLSX(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseImportDate_ExcelSerial(t *testing.T) {
	d, err := parseImportDate("45870")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-01", d.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := truncate("Checked high pressure pump seals and cleaned the inlet strainer", 40)
	assert.LessOrEqual(t, len([]rune(long)), 21)
	assert.Contains(t, long, "...")
}
