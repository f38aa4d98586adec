package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const (
	keyPrefix              = "ro:"
	dashboardKeyPrefix     = keyPrefix + "dashboard"
	monthlyReportKeyPrefix = keyPrefix + "report:monthly"
	waterQualityKeyPrefix  = keyPrefix + "water_quality"
	scanBatchSize          = 100
)

// DashboardCache holds computed read models. It is never authoritative:
// every write to the plant data calls InvalidateAll.
type DashboardCache interface {
	GetDashboard(ctx context.Context, day domain.Date) (*domain.Dashboard, bool, error)
	SetDashboard(ctx context.Context, day domain.Date, dashboard *domain.Dashboard) error
	GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, bool, error)
	SetMonthlyReport(ctx context.Context, report *domain.MonthlyReport) error
	GetWaterQuality(ctx context.Context, r domain.DateRange) (*domain.WaterQualitySummary, bool, error)
	SetWaterQuality(ctx context.Context, summary *domain.WaterQualitySummary) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetDashboard(ctx context.Context, day domain.Date) (*domain.Dashboard, bool, error) {
	var dashboard domain.Dashboard
	found, err := getJSON(ctx, c.client, buildKey(dashboardKeyPrefix, day.String()), &dashboard)
	if err != nil || !found {
		return nil, false, err
	}
	return &dashboard, true, nil
}

func (c *redisDashboardCache) SetDashboard(ctx context.Context, day domain.Date, dashboard *domain.Dashboard) error {
	return setJSON(ctx, c.client, buildKey(dashboardKeyPrefix, day.String()), dashboard, c.ttl)
}

func (c *redisDashboardCache) GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, bool, error) {
	var report domain.MonthlyReport
	found, err := getJSON(ctx, c.client, monthlyReportKey(year, month), &report)
	if err != nil || !found {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *redisDashboardCache) SetMonthlyReport(ctx context.Context, report *domain.MonthlyReport) error {
	return setJSON(ctx, c.client, monthlyReportKey(report.Year, report.Month), report, c.ttl)
}

func (c *redisDashboardCache) GetWaterQuality(ctx context.Context, r domain.DateRange) (*domain.WaterQualitySummary, bool, error) {
	var summary domain.WaterQualitySummary
	found, err := getJSON(ctx, c.client, buildKey(waterQualityKeyPrefix, r.From.String(), r.To.String()), &summary)
	if err != nil || !found {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisDashboardCache) SetWaterQuality(ctx context.Context, summary *domain.WaterQualitySummary) error {
	key := buildKey(waterQualityKeyPrefix, summary.Range.From.String(), summary.Range.To.String())
	return setJSON(ctx, c.client, key, summary, c.ttl)
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, keyPrefix, scanBatchSize)
}

func (n *noopDashboardCache) GetDashboard(ctx context.Context, day domain.Date) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetDashboard(ctx context.Context, day domain.Date, dashboard *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetMonthlyReport(ctx context.Context, report *domain.MonthlyReport) error {
	return nil
}

func (n *noopDashboardCache) GetWaterQuality(ctx context.Context, r domain.DateRange) (*domain.WaterQualitySummary, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetWaterQuality(ctx context.Context, summary *domain.WaterQualitySummary) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func monthlyReportKey(year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", monthlyReportKeyPrefix, year, month)
}

func buildKey(prefix string, parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return prefix + ":default"
	}

	raw := strings.Join(nonEmpty, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}
