package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/report"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/storage"
)

type reportMocks struct {
	readings   *mockReadingRepo
	cartridges *mockCartridgeRepo
	chemicals  *mockChemicalRepo
	production *mockProductionRepo
}

func newReportFixture(t *testing.T, archive storage.ObjectStorage) (*ReportService, *reportMocks) {
	m := &reportMocks{
		readings:   &mockReadingRepo{},
		cartridges: &mockCartridgeRepo{},
		chemicals:  &mockChemicalRepo{},
		production: &mockProductionRepo{},
	}
	svc := NewReportService(ReportSources{
		Readings:   m.readings,
		Cartridges: m.cartridges,
		Chemicals:  m.chemicals,
		Production: m.production,
	}, nil, archive, "RO System - Um Qasr Port")
	return svc, m
}

func (m *reportMocks) expectAugust(t *testing.T) {
	rng := domain.MonthRange(2025, time.August)
	m.readings.On("ListRange", mock.Anything, rng).Return([]domain.Reading{
		{ReadingDate: day(t, "2025-08-01"), TDS: 30, PH: 7, Production: 150, Maintenance: "Flushed membranes"},
		{ReadingDate: day(t, "2025-08-02"), TDS: 70, PH: 7.4, Production: 150},
	}, nil)
	m.cartridges.On("ListRange", mock.Anything, rng).Return([]domain.CartridgeRecord{
		{RecordDate: day(t, "2025-08-02"), DP: 4.2, IsChange: true, ChangeCost: 45},
		{RecordDate: day(t, "2025-08-09"), DP: 0.4},
	}, nil)
	m.chemicals.On("ListMovements", mock.Anything, repository.MovementFilter{Type: domain.MovementOut, From: rng.From, To: rng.To}).
		Return([]domain.ChemicalMovement{
			{ChemicalName: "HCL", MovementType: domain.MovementOut, Qty: 10},
			{ChemicalName: "HCL", MovementType: domain.MovementOut, Qty: 5},
			{ChemicalName: "Antiscalant PC-391", MovementType: domain.MovementOut, Qty: 3},
		}, nil)
	m.chemicals.On("List", mock.Anything).Return([]domain.Chemical{
		{Name: "HCL", UnitCost: 2},
		{Name: "Antiscalant PC-391", UnitCost: 5},
	}, nil)
}

func TestReportService_Monthly(t *testing.T) {
	svc, m := newReportFixture(t, nil)
	m.expectAugust(t)

	r, err := svc.Monthly(context.Background(), 2025, 8)
	require.NoError(t, err)

	assert.Equal(t, "2025-08-31", r.Range.To.String())
	assert.Equal(t, 50.0, r.AvgTDS)
	assert.Equal(t, 7.2, r.AvgPH)
	assert.Equal(t, 1, r.OutOfSpecDays)
	assert.Equal(t, 300.0, r.ProductionM3)

	require.Len(t, r.Cost.Lines, 2)
	assert.Equal(t, "Antiscalant PC-391", r.Cost.Lines[0].Chemical)
	assert.Equal(t, 15.0, r.Cost.Lines[1].Qty)
	assert.Equal(t, 30.0, r.Cost.Lines[1].TotalCost)
	assert.Equal(t, 45.0, r.Cost.ChemicalCost)
	assert.Equal(t, 45.0, r.Cost.CartridgeCost)
	assert.Equal(t, 1, r.Cost.CartridgeChanges)
	assert.Equal(t, 90.0, r.Cost.TotalCost)
	assert.Equal(t, 0.3, r.Cost.CostPerM3)
}

func TestReportService_Monthly_InvalidMonth(t *testing.T) {
	svc, _ := newReportFixture(t, nil)
	_, err := svc.Monthly(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportService_MonthlyDocument(t *testing.T) {
	svc, m := newReportFixture(t, nil)
	m.expectAugust(t)

	doc, err := svc.MonthlyDocument(context.Background(), 2025, 8, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "monthly_report_2025_08.pdf", doc.FileName)
	assert.Equal(t, report.ContentTypePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))

	doc, err = svc.MonthlyDocument(context.Background(), 2025, 8, "Excel")
	require.NoError(t, err)
	assert.Equal(t, "monthly_report_2025_08.xlsx", doc.FileName)
	assert.Equal(t, report.ContentTypeXLSX, doc.ContentType)

	_, err = svc.MonthlyDocument(context.Background(), 2025, 8, "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportService_Maintenance(t *testing.T) {
	svc, m := newReportFixture(t, nil)
	m.expectAugust(t)

	r, err := svc.Maintenance(context.Background(), domain.MonthRange(2025, time.August))
	require.NoError(t, err)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, "Daily log", r.Entries[0].Source)
	assert.Equal(t, "Cartridge CHANGE", r.Entries[1].Source)
	assert.Equal(t, "Cartridge CHECK", r.Entries[2].Source)
}

func TestReportService_Archive(t *testing.T) {
	doc := &Document{FileName: "monthly_report_2025_08.pdf", ContentType: report.ContentTypePDF, Data: []byte("%PDF-1.3")}

	svc, _ := newReportFixture(t, nil)
	_, err := svc.Archive(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc, _ = newReportFixture(t, local)

	archived, err := svc.Archive(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(archived.Key, "reports/"))
	assert.True(t, strings.HasSuffix(archived.Key, "/monthly_report_2025_08.pdf"))
	assert.Equal(t, int64(8), archived.Size)

	list, err := svc.Archived(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, archived.Key, list[0].Key)
}
