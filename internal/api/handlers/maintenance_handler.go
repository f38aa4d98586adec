package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type MaintenanceHandler struct {
	service   *service.MaintenanceService
	daysAhead int
}

func NewMaintenanceHandler(service *service.MaintenanceService, daysAhead int) *MaintenanceHandler {
	if daysAhead <= 0 {
		daysAhead = 90
	}
	return &MaintenanceHandler{service: service, daysAhead: daysAhead}
}

type scheduleRequest struct {
	Start     domain.Date `json:"start"`
	DaysAhead *int        `json:"days_ahead"`
}

func (r scheduleRequest) window(defaultDays int) int {
	if r.DaysAhead == nil {
		return defaultDays
	}
	return *r.DaysAhead
}

func (h *MaintenanceHandler) Tasks(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	tasks, err := h.service.Tasks(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "failed to fetch maintenance tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *MaintenanceHandler) SeedCatalog(c *gin.Context) {
	n, err := h.service.SeedCatalog(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to seed maintenance catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{"seeded": n})
}

func (h *MaintenanceHandler) GenerateSchedule(c *gin.Context) {
	var req scheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid schedule request", err)
			return
		}
	}

	created, err := h.service.GenerateSchedule(c.Request.Context(), req.Start, req.window(h.daysAhead))
	if err != nil {
		respondError(c, err, "failed to generate schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (h *MaintenanceHandler) WorkOrders(c *gin.Context) {
	filter := domain.WorkOrderFilter{Status: strings.TrimSpace(c.Query("status"))}

	from, err := parseOptionalDate(c, "from")
	if err != nil {
		respondError(c, err, "invalid from date")
		return
	}
	to, err := parseOptionalDate(c, "to")
	if err != nil {
		respondError(c, err, "invalid to date")
		return
	}
	filter.From, filter.To = from, to

	orders, err := h.service.WorkOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch work orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *MaintenanceHandler) UpdateWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update domain.WorkOrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid work order update", err)
		return
	}

	if err := h.service.UpdateWorkOrder(c.Request.Context(), id, update); err != nil {
		respondError(c, err, "failed to update work order")
		return
	}

	status, _ := domain.ParseWorkOrderStatus(update.Status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
