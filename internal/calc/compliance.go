package calc

import "github.com/omarembaby39-afk/UMQASR-RO/internal/domain"

// IsInSpec reports whether a reading meets the permeate limits.
func IsInSpec(r domain.Reading, limits domain.QualityLimits) bool {
	return r.TDS <= limits.MaxTDS && r.PH >= limits.MinPH && r.PH <= limits.MaxPH
}

// EvaluateCompliance counts in-spec and out-of-spec readings and returns the
// in-spec share rounded to one decimal. An empty input yields the zero value.
func EvaluateCompliance(readings []domain.Reading, limits domain.QualityLimits) domain.Compliance {
	var result domain.Compliance
	for _, r := range readings {
		if IsInSpec(r, limits) {
			result.InSpec++
		} else {
			result.OutOfSpec++
		}
	}

	if total := result.Total(); total > 0 {
		result.Percent = Round1(100 * float64(result.InSpec) / float64(total))
	}
	return result
}
