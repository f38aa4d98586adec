package domain

// Compliance is the in-spec share of a set of daily readings.
type Compliance struct {
	Percent   float64 `json:"percent"`
	InSpec    int     `json:"in_spec"`
	OutOfSpec int     `json:"out_of_spec"`
}

// Total returns the number of evaluated readings.
func (c Compliance) Total() int {
	return c.InSpec + c.OutOfSpec
}

// DPStatus is the classified cartridge differential pressure.
type DPStatus struct {
	Value    float64 `json:"value"`
	Gauge    float64 `json:"gauge"`
	Band     DPBand  `json:"band"`
	Severity string  `json:"severity"`
	Action   string  `json:"action"`
}

// StockCard is the dashboard view of one chemical.
type StockCard struct {
	Chemical    string      `json:"chemical"`
	Qty         float64     `json:"qty"`
	UnitCost    float64     `json:"unit_cost"`
	StockValue  float64     `json:"stock_value"`
	Rule        StockRule   `json:"rule"`
	Status      StockStatus `json:"status"`
	Approaching bool        `json:"approaching_min"`
	Progress    float64     `json:"progress"`
}

// CostLine is one chemical's consumption in a cost report.
type CostLine struct {
	Chemical  string  `json:"chemical"`
	Qty       float64 `json:"qty"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
	RatePerM3 float64 `json:"rate_per_m3"`
	CostPerM3 float64 `json:"cost_per_m3"`
}

// CostReport is the consumable cost of a period.
type CostReport struct {
	Lines            []CostLine `json:"lines"`
	ChemicalCost     float64    `json:"chemical_cost"`
	CartridgeCost    float64    `json:"cartridge_cost"`
	CartridgeChanges int        `json:"cartridge_changes"`
	TotalCost        float64    `json:"total_cost"`
	ProductionM3     float64    `json:"production_m3"`
	CostPerM3        float64    `json:"cost_per_m3"`
}

// SamplingPointSummary averages the samples taken at one sampling point.
type SamplingPointSummary struct {
	Point           string  `json:"point"`
	Samples         int     `json:"samples"`
	AvgTDS          float64 `json:"avg_tds"`
	AvgPH           float64 `json:"avg_ph"`
	AvgConductivity float64 `json:"avg_conductivity"`
	AvgTurbidity    float64 `json:"avg_turbidity"`
}

// WaterQualitySummary is the sampling overview of a date range.
type WaterQualitySummary struct {
	Range         DateRange              `json:"range"`
	Points        []SamplingPointSummary `json:"points"`
	SaltRejection *float64               `json:"salt_rejection_percent"`
}

// ChartPoint is a single dated value of a chart series.
type ChartPoint struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// Dashboard is the KPI payload of the main page.
type Dashboard struct {
	PlantName         string       `json:"plant_name"`
	CapacityM3H       float64      `json:"capacity_m3h"`
	LastTDS           *float64     `json:"last_tds"`
	LastPH            *float64     `json:"last_ph"`
	LastReadingDate   *Date        `json:"last_reading_date"`
	TotalRecords      int          `json:"total_records"`
	WindowDays        int          `json:"window_days"`
	Compliance        Compliance   `json:"compliance"`
	WindowProduction  float64      `json:"window_production_m3"`
	TodayProduction   float64      `json:"today_production_m3"`
	DP                *DPStatus    `json:"dp"`
	Stock             []StockCard  `json:"stock"`
	OverdueWorkOrders int          `json:"overdue_work_orders"`
	PendingTodosToday int          `json:"pending_todos_today"`
	TDSTrend          []ChartPoint `json:"tds_trend"`
	PHTrend           []ChartPoint `json:"ph_trend"`
	ConductivityTrend []ChartPoint `json:"conductivity_trend"`
	ProductionBars    []ChartPoint `json:"production_bars"`
}

// MonthlyReport gathers everything the monthly PDF and Excel exports render.
type MonthlyReport struct {
	PlantName     string            `json:"plant_name"`
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	Range         DateRange         `json:"range"`
	Readings      []Reading         `json:"readings"`
	AvgTDS        float64           `json:"avg_tds"`
	AvgPH         float64           `json:"avg_ph"`
	Compliance    Compliance        `json:"compliance"`
	OutOfSpecDays int               `json:"out_of_spec_days"`
	ProductionM3  float64           `json:"production_m3"`
	Cartridges    []CartridgeRecord `json:"cartridges"`
	Cost          CostReport        `json:"cost"`
}

// MaintenanceEntry is one line of the maintenance report.
type MaintenanceEntry struct {
	Date    Date   `json:"date"`
	Source  string `json:"source"`
	Details string `json:"details"`
}

// MaintenanceReport lists maintenance activity of a date range.
type MaintenanceReport struct {
	PlantName string             `json:"plant_name"`
	Range     DateRange          `json:"range"`
	Entries   []MaintenanceEntry `json:"entries"`
}

// ArchivedReport describes a report uploaded to object storage.
type ArchivedReport struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
