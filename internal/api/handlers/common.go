package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const defaultRangeDays = 30

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// parseDateRange reads from/to query params. Missing values default to the
// last 30 days ending today.
func parseDateRange(c *gin.Context) (domain.DateRange, error) {
	to := domain.Today()
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		to = d
	}

	from := to.AddDays(-(defaultRangeDays - 1))
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		from = d
	}

	r := domain.DateRange{From: from, To: to}
	return r, r.Validate()
}

func parseOptionalDate(c *gin.Context, param string) (domain.Date, error) {
	raw := strings.TrimSpace(c.Query(param))
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return d, nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id", err)
		return 0, false
	}
	return id, true
}

func parseYearMonth(c *gin.Context) (int, int, error) {
	today := domain.Today()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(today.Year())))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year must be a number", domain.ErrInvalidInput)
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(today.Month()))))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be a number", domain.ErrInvalidInput)
	}
	return year, month, nil
}
