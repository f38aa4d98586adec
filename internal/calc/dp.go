package calc

import (
	"math"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// Gauge bounds of the differential pressure dial, in bar.
const (
	GaugeMinBar = 0
	GaugeMaxBar = 10
)

// DP band limits, in bar. Below dpWarnBar is OK, above dpAlarmBar is Alarm.
const (
	dpWarnBar  = 1.0
	dpAlarmBar = 4.0
)

// DifferentialPressure is the pressure drop across the cartridge, never negative.
func DifferentialPressure(before, after float64) float64 {
	return math.Max(before-after, 0)
}

// GaugeValue clamps dp to the dial range. The stored value is left as is.
func GaugeValue(dp float64) float64 {
	return clamp(dp, GaugeMinBar, GaugeMaxBar)
}

// ClassifyDP maps a differential pressure to its band:
//
//	dp < 1       OK
//	1 <= dp <= 4 Warning
//	dp > 4       Alarm
func ClassifyDP(dp float64) domain.DPStatus {
	status := domain.DPStatus{Value: dp, Gauge: GaugeValue(dp)}

	switch {
	case dp < dpWarnBar:
		status.Band = domain.DPOK
		status.Severity = domain.SeverityNormal
		status.Action = "Cartridge OK"
	case dp <= dpAlarmBar:
		status.Band = domain.DPWarning
		status.Severity = domain.SeverityWarning
		status.Action = "Monitor filter, plan cartridge replacement"
	default:
		status.Band = domain.DPAlarm
		status.Severity = domain.SeverityCritical
		status.Action = "Replace cartridge immediately"
	}

	return status
}
