package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// invalidate drops every cached read model after a write. A cache failure is
// logged and never fails the write.
func invalidate(ctx context.Context, c cache.DashboardCache, op string) {
	if err := c.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("cache invalidate failed")
	}
}

func orNoop(c cache.DashboardCache) cache.DashboardCache {
	if c == nil {
		return cache.NewNoopDashboardCache()
	}
	return c
}

// lastDays returns the window of n days ending on (and including) today.
func lastDays(today domain.Date, n int) domain.DateRange {
	if n < 1 {
		n = 1
	}
	return domain.DateRange{From: today.AddDays(-(n - 1)), To: today}
}
