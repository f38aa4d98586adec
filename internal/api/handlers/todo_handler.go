package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type TodoHandler struct {
	service   *service.TodoService
	daysAhead int
}

func NewTodoHandler(service *service.TodoService, daysAhead int) *TodoHandler {
	if daysAhead <= 0 {
		daysAhead = 90
	}
	return &TodoHandler{service: service, daysAhead: daysAhead}
}

type todoStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *TodoHandler) Tasks(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	tasks, err := h.service.Tasks(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "failed to fetch operator tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TodoHandler) CreateTask(c *gin.Context) {
	task := domain.OperatorTask{Active: true}
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, "invalid operator task", err)
		return
	}

	if err := h.service.CreateTask(c.Request.Context(), &task); err != nil {
		respondError(c, err, "failed to save operator task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TodoHandler) Seed(c *gin.Context) {
	n, err := h.service.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to seed operator tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"seeded": n})
}

func (h *TodoHandler) Generate(c *gin.Context) {
	var req scheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid generate request", err)
			return
		}
	}

	created, err := h.service.Generate(c.Request.Context(), req.Start, req.window(h.daysAhead))
	if err != nil {
		respondError(c, err, "failed to generate to-dos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (h *TodoHandler) List(c *gin.Context) {
	filter := domain.TodoFilter{
		Operator: strings.TrimSpace(c.Query("operator")),
		Status:   strings.TrimSpace(c.Query("status")),
	}

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

	todos, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch to-dos")
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req todoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid to-do update", err)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes); err != nil {
		respondError(c, err, "failed to update to-do")
		return
	}

	status, _ := domain.ParseTodoStatus(req.Status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
