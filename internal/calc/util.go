package calc

import (
	"math"
	"strconv"
	"strings"
)

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// Round1 rounds to one decimal place, the precision of KPI cards.
func Round1(v float64) float64 {
	return roundFloat(v, 1)
}

// Round2 rounds to two decimal places, the precision of report tables.
func Round2(v float64) float64 {
	return roundFloat(v, 2)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FormatAmount renders v with comma digit groups and at most decimals
// fraction digits. A zero fraction is dropped: 1234.5 => "1,234.50",
// 1000 => "1,000".
func FormatAmount(v float64, decimals int) string {
	fixed := strconv.FormatFloat(math.Abs(roundFloat(v, decimals)), 'f', max(decimals, 0), 64)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if v < 0 && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if strings.Trim(frac, "0") != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func formatMoney(v float64) string {
	return FormatAmount(v, 2)
}

func formatBar(v float64) string {
	return strconv.FormatFloat(roundFloat(v, 2), 'f', -1, 64) + " bar"
}
