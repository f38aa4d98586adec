package calc

import (
	"math"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// ClassifyStock maps a quantity on hand to its band. The bands partition the
// axis: qty <= 0 EMPTY, qty < min LOW, qty > max HIGH (when max is set), else OK.
func ClassifyStock(qty float64, rule domain.StockRule) domain.StockStatus {
	switch {
	case qty <= 0:
		return domain.StockEmpty
	case qty < rule.Min:
		return domain.StockLow
	case rule.Max > 0 && qty > rule.Max:
		return domain.StockHigh
	default:
		return domain.StockOK
	}
}

// ApproachingMin reports an OK stock that has dropped below the warn level.
func ApproachingMin(qty float64, rule domain.StockRule) bool {
	return ClassifyStock(qty, rule) == domain.StockOK && qty < rule.WarnLevel()
}

// StockProgress is the fill ratio shown on the stock card, qty over twice the
// minimum, capped at 1.
func StockProgress(qty float64, rule domain.StockRule) float64 {
	if qty <= 0 {
		return 0
	}
	return math.Min(qty/math.Max(2*rule.Min, 1), 1)
}

// ApplyMovement returns the balance after posting a movement. OUT floors at zero.
func ApplyMovement(balance float64, kind domain.MovementType, qty float64) float64 {
	if kind == domain.MovementIn {
		return roundFloat(balance+qty, 3)
	}
	return roundFloat(math.Max(balance-qty, 0), 3)
}

// BuildStockCard assembles the dashboard card of a chemical.
func BuildStockCard(c domain.Chemical) domain.StockCard {
	rule := c.Rule()
	return domain.StockCard{
		Chemical:    c.Name,
		Qty:         c.Qty,
		UnitCost:    c.UnitCost,
		StockValue:  Round2(c.Qty * c.UnitCost),
		Rule:        rule,
		Status:      ClassifyStock(c.Qty, rule),
		Approaching: ApproachingMin(c.Qty, rule),
		Progress:    roundFloat(StockProgress(c.Qty, rule), 3),
	}
}

// Ledger renders movements as stock ledger lines in the given order.
func Ledger(movements []domain.ChemicalMovement) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(movements))
	for _, m := range movements {
		entry := domain.LedgerEntry{
			Date:     m.MovementDate,
			Chemical: m.ChemicalName,
			Balance:  m.BalanceAfter,
			Remarks:  m.Remarks,
		}
		if m.MovementType == domain.MovementIn {
			entry.QtyIn = m.Qty
		} else {
			entry.QtyOut = m.Qty
		}
		entries = append(entries, entry)
	}
	return entries
}
