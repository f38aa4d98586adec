package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func sendDocument(c *gin.Context, doc *service.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondError(c, err, "invalid month")
		return
	}

	r, err := h.service.Monthly(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err, "failed to build monthly report")
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) monthlyDocument(c *gin.Context) (*service.Document, bool) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondError(c, err, "invalid month")
		return nil, false
	}

	doc, err := h.service.MonthlyDocument(c.Request.Context(), year, month, c.DefaultQuery("format", service.FormatPDF))
	if err != nil {
		respondError(c, err, "failed to export monthly report")
		return nil, false
	}
	return doc, true
}

// ExportMonthly downloads the monthly report as PDF (default) or xlsx.
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	if doc, ok := h.monthlyDocument(c); ok {
		sendDocument(c, doc)
	}
}

// ArchiveMonthly renders the monthly report and stores it in the report archive.
func (h *ReportHandler) ArchiveMonthly(c *gin.Context) {
	doc, ok := h.monthlyDocument(c)
	if !ok {
		return
	}

	archived, err := h.service.Archive(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, "failed to archive report")
		return
	}

	c.JSON(http.StatusCreated, archived)
}

func (h *ReportHandler) Archived(c *gin.Context) {
	reports, err := h.service.Archived(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list archived reports")
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) Maintenance(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	r, err := h.service.Maintenance(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to build maintenance report")
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) ExportMaintenance(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	doc, err := h.service.MaintenanceDocument(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to export maintenance report")
		return
	}

	sendDocument(c, doc)
}

func (h *ReportHandler) ExportProduction(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	doc, err := h.service.ProductionDocument(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to export production report")
		return
	}

	sendDocument(c, doc)
}
