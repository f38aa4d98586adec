package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type CartridgeHandler struct {
	service *service.CartridgeService
}

func NewCartridgeHandler(service *service.CartridgeService) *CartridgeHandler {
	return &CartridgeHandler{service: service}
}

func (h *CartridgeHandler) Record(c *gin.Context) {
	var record domain.CartridgeRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		badRequest(c, "invalid cartridge record", err)
		return
	}

	status, err := h.service.Record(c.Request.Context(), &record)
	if err != nil {
		respondError(c, err, "failed to record cartridge")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record, "status": status})
}

func (h *CartridgeHandler) List(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "invalid date range")
		return
	}

	records, err := h.service.List(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err, "failed to fetch cartridge records")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *CartridgeHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch cartridge status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
