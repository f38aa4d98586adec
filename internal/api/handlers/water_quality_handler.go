package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type WaterQualityHandler struct {
	service *service.WaterQualityService
}

func NewWaterQualityHandler(service *service.WaterQualityService) *WaterQualityHandler {
	return &WaterQualityHandler{service: service}
}

func (h *WaterQualityHandler) Record(c *gin.Context) {
	var sample domain.WaterQualitySample
	if err := c.ShouldBindJSON(&sample); err != nil {
		badRequest(c, "invalid sample", err)
		return
	}

	if err := h.service.Record(c.Request.Context(), &sample); err != nil {
		respondError(c, err, "failed to record sample")
		return
	}

	c.JSON(http.StatusCreated, sample)
}

func (h *WaterQualityHandler) List(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	samples, err := h.service.List(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to fetch samples")
		return
	}

	c.JSON(http.StatusOK, samples)
}

func (h *WaterQualityHandler) Summary(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to summarize water quality")
		return
	}

	c.JSON(http.StatusOK, summary)
}
