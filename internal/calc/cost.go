package calc

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// CostInput is everything the cost aggregator needs for one period.
type CostInput struct {
	Movements    []domain.ChemicalMovement
	UnitCosts    map[string]float64
	Cartridges   []domain.CartridgeRecord
	ProductionM3 float64
}

// AggregateCost sums OUT movements per chemical priced at the current unit
// cost, adds cartridge change costs and divides by production. Cost per m3 is
// 0 when nothing was produced.
func AggregateCost(in CostInput) domain.CostReport {
	qtyByChemical := map[string]decimal.Decimal{}
	for _, m := range in.Movements {
		if m.MovementType != domain.MovementOut {
			continue
		}
		qtyByChemical[m.ChemicalName] = qtyByChemical[m.ChemicalName].Add(decimal.NewFromFloat(m.Qty))
	}

	names := make([]string, 0, len(qtyByChemical))
	for name := range qtyByChemical {
		names = append(names, name)
	}
	sort.Strings(names)

	production := decimal.NewFromFloat(in.ProductionM3)
	hasProduction := production.IsPositive()

	report := domain.CostReport{
		Lines:        make([]domain.CostLine, 0, len(names)),
		ProductionM3: in.ProductionM3,
	}

	chemicalTotal := decimal.Zero
	for _, name := range names {
		qty := qtyByChemical[name]
		unitCost := decimal.NewFromFloat(in.UnitCosts[name])
		lineCost := qty.Mul(unitCost)
		chemicalTotal = chemicalTotal.Add(lineCost)

		line := domain.CostLine{
			Chemical:  name,
			Qty:       qty.Round(3).InexactFloat64(),
			UnitCost:  unitCost.InexactFloat64(),
			TotalCost: lineCost.Round(2).InexactFloat64(),
		}
		if hasProduction {
			line.RatePerM3 = qty.Div(production).Round(4).InexactFloat64()
			line.CostPerM3 = lineCost.Div(production).Round(4).InexactFloat64()
		}
		report.Lines = append(report.Lines, line)
	}

	cartridgeTotal := decimal.Zero
	for _, c := range in.Cartridges {
		if !c.IsChange {
			continue
		}
		report.CartridgeChanges++
		cartridgeTotal = cartridgeTotal.Add(decimal.NewFromFloat(c.ChangeCost))
	}

	total := chemicalTotal.Add(cartridgeTotal)
	report.ChemicalCost = chemicalTotal.Round(2).InexactFloat64()
	report.CartridgeCost = cartridgeTotal.Round(2).InexactFloat64()
	report.TotalCost = total.Round(2).InexactFloat64()
	if hasProduction {
		report.CostPerM3 = total.Div(production).Round(4).InexactFloat64()
	}

	return report
}
