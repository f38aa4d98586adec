package calc

import (
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

var samplingPointOrder = []string{domain.PointFeed, domain.PointPermeate, domain.PointReject}

// SummarizeSamples averages samples per sampling point, feed first, then
// permeate, then reject. Points without samples are omitted.
func SummarizeSamples(samples []domain.WaterQualitySample) []domain.SamplingPointSummary {
	type acc struct {
		n         int
		tds       float64
		ph        float64
		cond      float64
		turbidity float64
	}
	byPoint := map[string]*acc{}
	for _, s := range samples {
		a, ok := byPoint[s.SamplingPoint]
		if !ok {
			a = &acc{}
			byPoint[s.SamplingPoint] = a
		}
		a.n++
		a.tds += s.TDS
		a.ph += s.PH
		a.cond += s.Conductivity
		a.turbidity += s.Turbidity
	}

	var out []domain.SamplingPointSummary
	for _, point := range samplingPointOrder {
		a, ok := byPoint[point]
		if !ok {
			continue
		}
		n := float64(a.n)
		out = append(out, domain.SamplingPointSummary{
			Point:           point,
			Samples:         a.n,
			AvgTDS:          Round2(a.tds / n),
			AvgPH:           Round2(a.ph / n),
			AvgConductivity: Round2(a.cond / n),
			AvgTurbidity:    Round2(a.turbidity / n),
		})
	}
	return out
}

// SaltRejection is 100 x (1 - permeate TDS / feed TDS). It is undefined
// without a positive feed TDS.
func SaltRejection(feedTDS, permeateTDS float64) (float64, bool) {
	if feedTDS <= 0 {
		return 0, false
	}
	return Round2(100 * (1 - permeateTDS/feedTDS)), true
}

// SummarizeWaterQuality combines per-point averages with the salt rejection
// derived from the feed and permeate averages.
func SummarizeWaterQuality(r domain.DateRange, samples []domain.WaterQualitySample) domain.WaterQualitySummary {
	summary := domain.WaterQualitySummary{Range: r, Points: SummarizeSamples(samples)}

	var feed, permeate *domain.SamplingPointSummary
	for i := range summary.Points {
		switch summary.Points[i].Point {
		case domain.PointFeed:
			feed = &summary.Points[i]
		case domain.PointPermeate:
			permeate = &summary.Points[i]
		}
	}
	if feed != nil && permeate != nil {
		if rejection, ok := SaltRejection(feed.AvgTDS, permeate.AvgTDS); ok {
			summary.SaltRejection = &rejection
		}
	}
	return summary
}
