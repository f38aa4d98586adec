package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const (
	pdfMargin     = 12.0
	pdfLineHeight = 7.0
)

type pdfColumn struct {
	title string
	width float64
	align string
}

type pdfDoc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFDoc(title string) *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")

	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *pdfDoc) heading(text string, generated time.Time) {
	d.pdf.SetFont("Helvetica", "B", 15)
	d.pdf.SetTextColor(14, 102, 85)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 8)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.CellFormat(0, 5, "Generated "+generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(3)
}

func (d *pdfDoc) section(text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(0, 8, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *pdfDoc) keyValues(rows [][2]string) {
	d.pdf.SetFont("Helvetica", "", 10)
	for _, kv := range rows {
		d.pdf.CellFormat(70, pdfLineHeight, d.tr(kv[0]), "", 0, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(0, pdfLineHeight, d.tr(kv[1]), "", 1, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 10)
	}
}

func (d *pdfDoc) table(cols []pdfColumn, rows [][]string) {
	header := func() {
		d.pdf.SetFont("Helvetica", "B", 9)
		d.pdf.SetFillColor(14, 102, 85)
		d.pdf.SetTextColor(255, 255, 255)
		for _, c := range cols {
			d.pdf.CellFormat(c.width, pdfLineHeight, d.tr(c.title), "1", 0, "C", true, 0, "")
		}
		d.pdf.Ln(-1)
		d.pdf.SetTextColor(0, 0, 0)
		d.pdf.SetFont("Helvetica", "", 9)
	}

	header()
	if len(rows) == 0 {
		total := 0.0
		for _, c := range cols {
			total += c.width
		}
		d.pdf.CellFormat(total, pdfLineHeight, "No records", "1", 1, "C", false, 0, "")
		return
	}

	_, pageHeight := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	for i, row := range rows {
		if d.pdf.GetY()+pdfLineHeight > pageHeight-bottom-10 {
			d.pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		d.pdf.SetFillColor(235, 245, 242)
		for j, c := range cols {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			d.pdf.CellFormat(c.width, pdfLineHeight, d.tr(truncate(text, c.width)), "1", 0, c.align, fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *pdfDoc) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyPDF renders the monthly operations report.
func MonthlyPDF(r *domain.MonthlyReport) ([]byte, error) {
	d := newPDFDoc(fmt.Sprintf("%s %04d-%02d", r.PlantName, r.Year, r.Month))
	d.heading(fmt.Sprintf("%s - Monthly Report %s", r.PlantName, time.Month(r.Month).String()+" "+strconv.Itoa(r.Year)), time.Now())

	d.section("Summary")
	d.keyValues([][2]string{
		{"Period", r.Range.From.String() + " to " + r.Range.To.String()},
		{"Daily readings", strconv.Itoa(len(r.Readings))},
		{"Average TDS (ppm)", num(r.AvgTDS, 2)},
		{"Average pH", num(r.AvgPH, 2)},
		{"Compliance", num(r.Compliance.Percent, 1) + " %"},
		{"Out-of-spec days", strconv.Itoa(r.OutOfSpecDays)},
		{"Total production (m3)", num(r.ProductionM3, 2)},
	})

	d.section("Chemical consumption")
	chemRows := make([][]string, 0, len(r.Cost.Lines))
	for _, l := range r.Cost.Lines {
		chemRows = append(chemRows, []string{l.Chemical, num(l.Qty, 2), num(l.UnitCost, 2), num(l.TotalCost, 2), num(l.RatePerM3, 4), num(l.CostPerM3, 4)})
	}
	d.table([]pdfColumn{
		{"Chemical", 56, "L"},
		{"Used (kg)", 24, "R"},
		{"Unit cost", 24, "R"},
		{"Total", 26, "R"},
		{"kg/m3", 28, "R"},
		{"Cost/m3", 28, "R"},
	}, chemRows)

	d.section("Cartridge filter")
	cartRows := make([][]string, 0, len(r.Cartridges))
	for _, c := range r.Cartridges {
		cartRows = append(cartRows, []string{c.RecordDate.String(), c.Action(), num(c.DP, 2), num(c.ChangeCost, 2), c.Remarks})
	}
	d.table([]pdfColumn{
		{"Date", 26, "C"},
		{"Action", 22, "C"},
		{"DP (bar)", 22, "R"},
		{"Cost", 24, "R"},
		{"Remarks", 92, "L"},
	}, cartRows)

	d.section("Consumables")
	d.keyValues([][2]string{
		{"Chemical cost", num(r.Cost.ChemicalCost, 2)},
		{"Cartridge changes", strconv.Itoa(r.Cost.CartridgeChanges)},
		{"Cartridge cost", num(r.Cost.CartridgeCost, 2)},
		{"Total consumable cost", num(r.Cost.TotalCost, 2)},
		{"Cost per m3", num(r.Cost.CostPerM3, 4)},
	})

	return d.output()
}

// MaintenancePDF renders the maintenance activity of a date range.
func MaintenancePDF(r *domain.MaintenanceReport) ([]byte, error) {
	d := newPDFDoc(r.PlantName + " maintenance")
	d.heading(r.PlantName+" - Maintenance Report", time.Now())

	d.keyValues([][2]string{
		{"Period", r.Range.From.String() + " to " + r.Range.To.String()},
		{"Entries", strconv.Itoa(len(r.Entries))},
	})
	d.pdf.Ln(2)

	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{e.Date.String(), e.Source, e.Details})
	}
	d.table([]pdfColumn{
		{"Date", 26, "C"},
		{"Source", 40, "L"},
		{"Details", 120, "L"},
	}, rows)

	return d.output()
}

func num(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// truncate shortens text so it fits a cell of the given width at 9pt.
func truncate(text string, width float64) string {
	limit := int(width / 1.9)
	r := []rune(text)
	if len(r) <= limit || limit < 4 {
		return text
	}
	return string(r[:limit-3]) + "..."
}
