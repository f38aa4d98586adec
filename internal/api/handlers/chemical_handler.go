package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type ChemicalHandler struct {
	service *service.ChemicalService
}

func NewChemicalHandler(service *service.ChemicalService) *ChemicalHandler {
	return &ChemicalHandler{service: service}
}

type unitCostRequest struct {
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
}

type ruleRequest struct {
	Name string           `json:"name"`
	Rule domain.StockRule `json:"rule"`
}

type resetPeriodRequest struct {
	Period string `json:"period"`
}

func (h *ChemicalHandler) parseMovementFilter(c *gin.Context) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		Chemical: strings.TrimSpace(c.Query("chemical")),
		Type:     domain.MovementType(strings.TrimSpace(c.Query("type"))),
	}

	from, err := parseOptionalDate(c, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseOptionalDate(c, "to")
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	return filter, nil
}

// StockCards lists every chemical with its stock status.
func (h *ChemicalHandler) StockCards(c *gin.Context) {
	cards, err := h.service.StockCards(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch chemical stock")
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *ChemicalHandler) Create(c *gin.Context) {
	var chemical domain.Chemical
	if err := c.ShouldBindJSON(&chemical); err != nil {
		badRequest(c, "invalid chemical", err)
		return
	}

	if err := h.service.Create(c.Request.Context(), &chemical); err != nil {
		respondError(c, err, "failed to save chemical")
		return
	}

	c.JSON(http.StatusCreated, chemical)
}

func (h *ChemicalHandler) UpdateUnitCost(c *gin.Context) {
	var req unitCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid unit cost", err)
		return
	}

	if err := h.service.UpdateUnitCost(c.Request.Context(), req.Name, req.UnitCost); err != nil {
		respondError(c, err, "failed to update unit cost")
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": req.Name, "unit_cost": req.UnitCost})
}

func (h *ChemicalHandler) UpdateRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid stock rule", err)
		return
	}

	if err := h.service.UpdateRule(c.Request.Context(), req.Name, req.Rule); err != nil {
		respondError(c, err, "failed to update stock rule")
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *ChemicalHandler) PostMovement(c *gin.Context) {
	var movement domain.ChemicalMovement
	if err := c.ShouldBindJSON(&movement); err != nil {
		badRequest(c, "invalid movement", err)
		return
	}

	chemical, err := h.service.PostMovement(c.Request.Context(), &movement)
	if err != nil {
		respondError(c, err, "failed to post movement")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movement": movement, "chemical": chemical})
}

func (h *ChemicalHandler) Movements(c *gin.Context) {
	filter, err := h.parseMovementFilter(c)
	if err != nil {
		respondError(c, err, "invalid movement filter")
		return
	}

	movements, err := h.service.Movements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch movements")
		return
	}

	c.JSON(http.StatusOK, movements)
}

func (h *ChemicalHandler) Ledger(c *gin.Context) {
	filter, err := h.parseMovementFilter(c)
	if err != nil {
		respondError(c, err, "invalid movement filter")
		return
	}

	ledger, err := h.service.Ledger(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to build ledger")
		return
	}

	c.JSON(http.StatusOK, ledger)
}

func (h *ChemicalHandler) ResetPeriod(c *gin.Context) {
	var req resetPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid period", err)
		return
	}

	n, err := h.service.ResetPeriod(c.Request.Context(), strings.TrimSpace(req.Period))
	if err != nil {
		respondError(c, err, "failed to reset stock period")
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": req.Period, "chemicals": n})
}
