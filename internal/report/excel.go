package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// Content types of the generated documents.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	titleStyle  int
}

func newSheetWriter() (*sheetWriter, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"0E6655"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create title style: %w", err)
	}

	return &sheetWriter{f: f, headerStyle: headerStyle, titleStyle: titleStyle}, nil
}

// sheet returns the named sheet, renaming the default one on first use.
func (w *sheetWriter) sheet(name string) (string, error) {
	if idx, _ := w.f.GetSheetIndex("Sheet1"); idx >= 0 {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return "", err
		}
		return name, nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return "", err
	}
	return name, nil
}

// table writes a header row at startRow followed by rows, and freezes the header.
func (w *sheetWriter) table(sheet string, startRow int, headers []string, rows [][]interface{}) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, startRow)
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, startRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), startRow)
	if err := w.f.SetCellStyle(sheet, first, last, w.headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, startRow+r+1)
			if err := w.f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := w.f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}

	topLeft, _ := excelize.CoordinatesToCellName(1, startRow+1)
	return w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      startRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) title(sheet, text string) error {
	if err := w.f.SetCellValue(sheet, "A1", text); err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, "A1", "A1", w.titleStyle)
}

func (w *sheetWriter) close() {
	_ = w.f.Close()
}

func (w *sheetWriter) bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyExcel renders the monthly report as a workbook with a summary sheet
// and one sheet per detail table.
func MonthlyExcel(r *domain.MonthlyReport) ([]byte, error) {
	w, err := newSheetWriter()
	if err != nil {
		return nil, err
	}
	defer w.close()

	summary, err := w.sheet("Summary")
	if err != nil {
		return nil, err
	}
	if err := w.title(summary, fmt.Sprintf("%s - Monthly Report %04d-%02d", r.PlantName, r.Year, r.Month)); err != nil {
		return nil, err
	}
	kpis := [][]interface{}{
		{"Average TDS (ppm)", r.AvgTDS},
		{"Average pH", r.AvgPH},
		{"Compliance (%)", r.Compliance.Percent},
		{"Out-of-spec days", r.OutOfSpecDays},
		{"Total production (m3)", r.ProductionM3},
		{"Chemical cost", r.Cost.ChemicalCost},
		{"Cartridge cost", r.Cost.CartridgeCost},
		{"Cartridge changes", r.Cost.CartridgeChanges},
		{"Total consumable cost", r.Cost.TotalCost},
		{"Cost per m3", r.Cost.CostPerM3},
	}
	if err := w.table(summary, 3, []string{"Indicator", "Value"}, kpis); err != nil {
		return nil, err
	}

	readings, err := w.sheet("Readings")
	if err != nil {
		return nil, err
	}
	readingRows := make([][]interface{}, 0, len(r.Readings))
	for _, rd := range r.Readings {
		readingRows = append(readingRows, []interface{}{
			rd.ReadingDate.String(), rd.TDS, rd.PH, rd.Conductivity, rd.FlowM3, rd.Production, rd.Maintenance, rd.Notes,
		})
	}
	if err := w.table(readings, 1, []string{"Date", "TDS", "pH", "Conductivity", "Flow (m3)", "Production (m3)", "Maintenance", "Notes"}, readingRows); err != nil {
		return nil, err
	}

	chemicals, err := w.sheet("Chemicals")
	if err != nil {
		return nil, err
	}
	chemicalRows := make([][]interface{}, 0, len(r.Cost.Lines))
	for _, l := range r.Cost.Lines {
		chemicalRows = append(chemicalRows, []interface{}{l.Chemical, l.Qty, l.UnitCost, l.TotalCost, l.RatePerM3, l.CostPerM3})
	}
	if err := w.table(chemicals, 1, []string{"Chemical", "Qty used (kg)", "Unit cost", "Total cost", "kg/m3", "Cost/m3"}, chemicalRows); err != nil {
		return nil, err
	}

	cartridge, err := w.sheet("Cartridge")
	if err != nil {
		return nil, err
	}
	cartridgeRows := make([][]interface{}, 0, len(r.Cartridges))
	for _, c := range r.Cartridges {
		cartridgeRows = append(cartridgeRows, []interface{}{c.RecordDate.String(), c.Action(), c.DP, c.ChangeCost, c.Remarks})
	}
	if err := w.table(cartridge, 1, []string{"Date", "Action", "DP (bar)", "Cost", "Remarks"}, cartridgeRows); err != nil {
		return nil, err
	}

	return w.bytes()
}

// ProductionExcel renders the daily production table.
func ProductionExcel(plantName string, rows []domain.DailyProduction) ([]byte, error) {
	w, err := newSheetWriter()
	if err != nil {
		return nil, err
	}
	defer w.close()

	sheet, err := w.sheet("Production")
	if err != nil {
		return nil, err
	}
	if err := w.title(sheet, plantName+" - Daily Production"); err != nil {
		return nil, err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, p := range rows {
		data = append(data, []interface{}{p.ProductionDate.String(), p.Value, p.CumulativeMonth, p.CumulativeTotal})
	}
	if err := w.table(sheet, 3, []string{"Date", "Production (m3)", "Month to date (m3)", "Total (m3)"}, data); err != nil {
		return nil, err
	}

	return w.bytes()
}
