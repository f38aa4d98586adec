package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type ProductionHandler struct {
	service *service.ProductionService
}

func NewProductionHandler(service *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

func (h *ProductionHandler) RecordFlowmeter(c *gin.Context) {
	var reading domain.FlowmeterReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		badRequest(c, "invalid flowmeter reading", err)
		return
	}

	if err := h.service.RecordFlowmeter(c.Request.Context(), &reading); err != nil {
		respondError(c, err, "failed to record flowmeter reading")
		return
	}

	c.JSON(http.StatusCreated, reading)
}

func (h *ProductionHandler) Flowmeter(c *gin.Context) {
	readings, err := h.service.Flowmeter(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch flowmeter readings")
		return
	}

	c.JSON(http.StatusOK, readings)
}

// Rebuild recomputes daily production. Fewer than two flowmeter readings
// answers 409 and leaves the table untouched.
func (h *ProductionHandler) Rebuild(c *gin.Context) {
	rows, err := h.service.Rebuild(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to rebuild daily production")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": len(rows), "production": rows})
}

func (h *ProductionHandler) List(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	rows, err := h.service.List(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to fetch daily production")
		return
	}

	c.JSON(http.StatusOK, rows)
}
