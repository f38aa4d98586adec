package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.service.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
