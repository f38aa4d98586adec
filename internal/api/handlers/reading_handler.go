package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/report"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type ReadingHandler struct {
	service *service.ReadingService
}

func NewReadingHandler(service *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{service: service}
}

func (h *ReadingHandler) Save(c *gin.Context) {
	var reading domain.Reading
	if err := c.ShouldBindJSON(&reading); err != nil {
		badRequest(c, "invalid reading", err)
		return
	}

	if err := h.service.Save(c.Request.Context(), &reading); err != nil {
		respondError(c, err, "failed to save reading")
		return
	}

	c.JSON(http.StatusCreated, reading)
}

func (h *ReadingHandler) List(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	readings, err := h.service.List(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to fetch readings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings, "range": rng})
}

func (h *ReadingHandler) Latest(c *gin.Context) {
	reading, err := h.service.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch latest reading")
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (h *ReadingHandler) Compliance(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	compliance, err := h.service.Compliance(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to evaluate compliance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": rng, "compliance": compliance})
}

// Import loads daily readings from an uploaded legacy Excel log.
func (h *ReadingHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "no file provided", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "unreadable file", err)
		return
	}
	defer file.Close()

	readings, rowErrs, err := report.ReadReadingsXLSX(file)
	if err != nil {
		respondError(c, err, "failed to read workbook")
		return
	}

	saved, err := h.service.Import(c.Request.Context(), readings)
	if err != nil {
		respondError(c, err, "failed to import readings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": header.Filename,
		"imported": saved,
		"skipped":  rowErrs,
	})
}
