package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// RowError reports a spreadsheet row that could not be imported.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

var readingHeaderAliases = map[string]string{
	"date":            "date",
	"reading_date":    "date",
	"day":             "date",
	"tds":             "tds",
	"tds_ppm":         "tds",
	"ph":              "ph",
	"conductivity":    "conductivity",
	"ec":              "conductivity",
	"flow":            "flow",
	"flow_m3":         "flow",
	"production":      "production",
	"production_m3":   "production",
	"maintenance":     "maintenance",
	"maintenance_log": "maintenance",
	"notes":           "notes",
	"remarks":         "notes",
}

var importDateLayouts = []string{
	domain.DateLayout,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"2/1/06",
	"2006-01-02 15:04:05",
}

// ReadReadingsXLSX reads daily readings from the first sheet of a legacy
// operator log. The first row is the header; columns are matched by name.
// Rows that fail validation are returned as RowErrors and skipped.
func ReadReadingsXLSX(r io.Reader) ([]domain.Reading, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var (
		columns  map[string]int
		readings []domain.Reading
		rowErrs  []RowError
		rowNum   int
	)

	for rows.Next() {
		rowNum++
		record, err := rows.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", rowNum, err)
		}

		if columns == nil {
			columns = mapHeader(record)
			if _, ok := columns["date"]; !ok {
				return nil, nil, fmt.Errorf("%w: header row has no date column", domain.ErrInvalidInput)
			}
			continue
		}

		if isBlank(record) {
			continue
		}

		reading, err := parseReadingRow(record, columns)
		if err == nil {
			err = reading.Validate()
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		readings = append(readings, reading)
	}

	if err := rows.Error(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return readings, rowErrs, nil
}

func mapHeader(record []string) map[string]int {
	columns := map[string]int{}
	for i, h := range record {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.NewReplacer(" ", "_", "(", "", ")", "", "³", "3").Replace(key)
		if field, ok := readingHeaderAliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	return columns
}

func parseReadingRow(record []string, columns map[string]int) (domain.Reading, error) {
	cell := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var reading domain.Reading
	date, err := parseImportDate(cell("date"))
	if err != nil {
		return reading, err
	}
	reading.ReadingDate = date

	numbers := []struct {
		field string
		dest  *float64
	}{
		{"tds", &reading.TDS},
		{"ph", &reading.PH},
		{"conductivity", &reading.Conductivity},
		{"flow", &reading.FlowM3},
		{"production", &reading.Production},
	}
	for _, n := range numbers {
		raw := cell(n.field)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return reading, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidInput, n.field, raw)
		}
		*n.dest = v
	}

	reading.Maintenance = cell("maintenance")
	reading.Notes = cell("notes")
	return reading, nil
}

func parseImportDate(raw string) (domain.Date, error) {
	if raw == "" {
		return domain.Date{}, fmt.Errorf("%w: missing date", domain.ErrInvalidInput)
	}

	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.NewDate(t), nil
		}
	}

	// unformatted date cells come through as the Excel serial number
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return domain.NewDate(t), nil
		}
	}

	return domain.Date{}, fmt.Errorf("%w: unrecognised date %q", domain.ErrInvalidInput, raw)
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
