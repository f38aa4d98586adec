package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestSummarizeWaterQuality(t *testing.T) {
	samples := []domain.WaterQualitySample{
		{SamplingPoint: domain.PointPermeate, TDS: 20, PH: 7.0},
		{SamplingPoint: domain.PointFeed, TDS: 1000, PH: 7.8, Turbidity: 1},
		{SamplingPoint: domain.PointPermeate, TDS: 24, PH: 7.2},
		{SamplingPoint: domain.PointFeed, TDS: 1200, PH: 8.0, Turbidity: 2},
	}

	summary := SummarizeWaterQuality(domain.DateRange{}, samples)

	require.Len(t, summary.Points, 2)
	assert.Equal(t, domain.PointFeed, summary.Points[0].Point)
	assert.Equal(t, 2, summary.Points[0].Samples)
	assert.Equal(t, 1100.0, summary.Points[0].AvgTDS)
	assert.Equal(t, 1.5, summary.Points[0].AvgTurbidity)
	assert.Equal(t, domain.PointPermeate, summary.Points[1].Point)
	assert.Equal(t, 22.0, summary.Points[1].AvgTDS)

	require.NotNil(t, summary.SaltRejection)
	assert.InDelta(t, 98.0, *summary.SaltRejection, 1e-9)
}

func TestSummarizeWaterQuality_NoFeed(t *testing.T) {
	summary := SummarizeWaterQuality(domain.DateRange{}, []domain.WaterQualitySample{
		{SamplingPoint: domain.PointPermeate, TDS: 20},
	})
	assert.Nil(t, summary.SaltRejection)
}

func TestSaltRejection(t *testing.T) {
	_, ok := SaltRejection(0, 10)
	assert.False(t, ok)

	v, ok := SaltRejection(500, 25)
	assert.True(t, ok)
	assert.InDelta(t, 95.0, v, 1e-9)
}
