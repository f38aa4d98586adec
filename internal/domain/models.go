package domain

import (
	"fmt"
	"strings"
	"time"
)

// QualityLimits are the permeate limits a daily reading must meet to be in spec.
type QualityLimits struct {
	MaxTDS float64
	MinPH  float64
	MaxPH  float64
}

// DefaultQualityLimits is TDS <= 50 ppm and 6.5 <= pH <= 8.5.
var DefaultQualityLimits = QualityLimits{MaxTDS: 50, MinPH: 6.5, MaxPH: 8.5}

// Reading represents the daily operator log entry. One per date.
type Reading struct {
	ID           int64     `json:"id" db:"id"`
	ReadingDate  Date      `json:"reading_date" db:"reading_date"`
	TDS          float64   `json:"tds" db:"tds"`
	PH           float64   `json:"ph" db:"ph"`
	Conductivity float64   `json:"conductivity" db:"conductivity"`
	FlowM3       float64   `json:"flow_m3" db:"flow_m3"`
	Production   float64   `json:"production" db:"production"`
	Maintenance  string    `json:"maintenance" db:"maintenance"`
	Notes        string    `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (r Reading) Validate() error {
	if r.ReadingDate.IsZero() {
		return fmt.Errorf("%w: reading date is required", ErrInvalidInput)
	}
	if r.PH < 0 || r.PH > 14 {
		return fmt.Errorf("%w: pH %.2f outside 0-14", ErrInvalidInput, r.PH)
	}
	if r.TDS < 0 || r.Conductivity < 0 || r.FlowM3 < 0 || r.Production < 0 {
		return fmt.Errorf("%w: tds, conductivity, flow and production must not be negative", ErrInvalidInput)
	}
	return nil
}

// CartridgeRecord represents a cartridge filter pressure check or replacement.
type CartridgeRecord struct {
	ID             int64     `json:"id" db:"id"`
	RecordDate     Date      `json:"record_date" db:"record_date"`
	PressureBefore float64   `json:"pressure_before" db:"pressure_before"`
	PressureAfter  float64   `json:"pressure_after" db:"pressure_after"`
	DP             float64   `json:"dp" db:"dp"`
	Remarks        string    `json:"remarks" db:"remarks"`
	IsChange       bool      `json:"is_change" db:"is_change"`
	ChangeCost     float64   `json:"change_cost" db:"change_cost"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Action returns the report tag of the record.
func (c CartridgeRecord) Action() string {
	if c.IsChange {
		return "CHANGE"
	}
	return "CHECK"
}

func (c CartridgeRecord) Validate() error {
	if c.RecordDate.IsZero() {
		return fmt.Errorf("%w: record date is required", ErrInvalidInput)
	}
	if c.PressureBefore < 0 || c.PressureAfter < 0 {
		return fmt.Errorf("%w: pressures must not be negative", ErrInvalidInput)
	}
	if c.ChangeCost < 0 {
		return fmt.Errorf("%w: change cost must not be negative", ErrInvalidInput)
	}
	return nil
}

// StockRule holds the thresholds the stock classifier applies to one chemical.
// Warn is the "approaching minimum" level; zero means 1.3 x Min.
type StockRule struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Warn float64 `json:"warn"`
}

// WarnLevel returns the effective approaching-minimum level.
func (r StockRule) WarnLevel() float64 {
	if r.Warn > 0 {
		return r.Warn
	}
	return r.Min * 1.3
}

// Chemical represents a treatment chemical with its stock on hand and rule thresholds.
type Chemical struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Qty         float64   `json:"qty" db:"qty"`
	UnitCost    float64   `json:"unit_cost" db:"unit_cost"`
	MinLevel    float64   `json:"min_level" db:"min_level"`
	MaxLevel    float64   `json:"max_level" db:"max_level"`
	WarnLevel   float64   `json:"warn_level" db:"warn_level"`
	StockPeriod string    `json:"stock_period" db:"stock_period"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Rule returns the classifier thresholds stored on the chemical row.
func (c Chemical) Rule() StockRule {
	return StockRule{Min: c.MinLevel, Max: c.MaxLevel, Warn: c.WarnLevel}
}

// ChemicalMovement represents one IN or OUT posting against a chemical's stock.
type ChemicalMovement struct {
	ID           int64        `json:"id" db:"id"`
	MovementDate Date         `json:"movement_date" db:"movement_date"`
	ChemicalName string       `json:"chemical_name" db:"chemical_name"`
	MovementType MovementType `json:"movement_type" db:"movement_type"`
	Qty          float64      `json:"qty" db:"qty"`
	BalanceAfter float64      `json:"balance_after" db:"balance_after"`
	Remarks      string       `json:"remarks" db:"remarks"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

func (m ChemicalMovement) Validate() error {
	if strings.TrimSpace(m.ChemicalName) == "" {
		return fmt.Errorf("%w: chemical name is required", ErrInvalidInput)
	}
	if m.MovementDate.IsZero() {
		return fmt.Errorf("%w: movement date is required", ErrInvalidInput)
	}
	if _, err := ParseMovementType(string(m.MovementType)); err != nil {
		return err
	}
	if m.Qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return nil
}

// LedgerEntry is a movement rendered as a stock ledger line.
type LedgerEntry struct {
	Date     Date    `json:"date"`
	Chemical string  `json:"chemical"`
	QtyIn    float64 `json:"qty_in"`
	QtyOut   float64 `json:"qty_out"`
	Balance  float64 `json:"balance"`
	Remarks  string  `json:"remarks"`
}

// FlowmeterReading is a cumulative totalizer value taken once per day.
type FlowmeterReading struct {
	ID          int64     `json:"id" db:"id"`
	ReadingDate Date      `json:"reading_date" db:"reading_date"`
	Value       float64   `json:"value" db:"value"`
	Operator    string    `json:"operator" db:"operator"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (f FlowmeterReading) Validate() error {
	if f.ReadingDate.IsZero() {
		return fmt.Errorf("%w: reading date is required", ErrInvalidInput)
	}
	if f.Value < 0 {
		return fmt.Errorf("%w: totalizer value must not be negative", ErrInvalidInput)
	}
	return nil
}

// DailyProduction is derived from consecutive flowmeter readings.
type DailyProduction struct {
	ProductionDate  Date    `json:"production_date" db:"production_date"`
	Value           float64 `json:"value" db:"value"`
	CumulativeMonth float64 `json:"cumulative_month" db:"cumulative_month"`
	CumulativeTotal float64 `json:"cumulative_total" db:"cumulative_total"`
}

// MaintenanceTask is a recurring task of the maintenance catalog.
type MaintenanceTask struct {
	ID           int64   `json:"id" db:"id"`
	TaskName     string  `json:"task_name" db:"task_name"`
	Category     string  `json:"category" db:"category"`
	IntervalDays int     `json:"interval_days" db:"interval_days"`
	Priority     string  `json:"priority" db:"priority"`
	EstHours     float64 `json:"est_hours" db:"est_hours"`
	Active       bool    `json:"active" db:"active"`
}

// WorkOrder is one scheduled occurrence of a maintenance task.
type WorkOrder struct {
	ID             int64   `json:"id" db:"id"`
	MasterID       int64   `json:"master_id" db:"master_id"`
	TaskName       string  `json:"task_name" db:"task_name"`
	Category       string  `json:"category" db:"category"`
	DueDate        Date    `json:"due_date" db:"due_date"`
	Status         string  `json:"status" db:"status"`
	Priority       string  `json:"priority" db:"priority"`
	Technician     string  `json:"technician" db:"technician"`
	EstHours       float64 `json:"est_hours" db:"est_hours"`
	ActualHours    float64 `json:"actual_hours" db:"actual_hours"`
	Cost           float64 `json:"cost" db:"cost"`
	CompletionDate *Date   `json:"completion_date" db:"completion_date"`
	Remarks        string  `json:"remarks" db:"remarks"`
}

// Overdue reports whether the order is still pending after its due date.
func (w WorkOrder) Overdue(today Date) bool {
	return w.Status == WorkOrderPending && w.DueDate.Before(today.Time)
}

// WorkOrderUpdate carries the operator-editable fields of a work order.
type WorkOrderUpdate struct {
	Status         string  `json:"status"`
	Technician     string  `json:"technician"`
	ActualHours    float64 `json:"actual_hours"`
	Cost           float64 `json:"cost"`
	CompletionDate *Date   `json:"completion_date"`
	Remarks        string  `json:"remarks"`
}

func (u *WorkOrderUpdate) Normalize(today Date) error {
	status, ok := ParseWorkOrderStatus(u.Status)
	if !ok {
		return fmt.Errorf("%w: unknown work order status %q", ErrInvalidInput, u.Status)
	}
	u.Status = status
	if u.ActualHours < 0 || u.Cost < 0 {
		return fmt.Errorf("%w: hours and cost must not be negative", ErrInvalidInput)
	}
	if status == WorkOrderCompleted && u.CompletionDate == nil {
		d := today
		u.CompletionDate = &d
	}
	if status == WorkOrderPending {
		u.CompletionDate = nil
	}
	return nil
}

// WorkOrderFilter narrows work order listings. Zero values match everything.
type WorkOrderFilter struct {
	Status string
	From   Date
	To     Date
}

// OperatorTask is a recurring checklist item assigned to an operator.
type OperatorTask struct {
	ID        int64     `json:"id" db:"id"`
	Operator  string    `json:"operator" db:"operator"`
	TaskName  string    `json:"task_name" db:"task_name"`
	Frequency Frequency `json:"frequency" db:"frequency"`
	Active    bool      `json:"active" db:"active"`
}

func (t *OperatorTask) Normalize() error {
	t.Operator = strings.TrimSpace(t.Operator)
	t.TaskName = strings.TrimSpace(t.TaskName)
	if t.Operator == "" || t.TaskName == "" {
		return fmt.Errorf("%w: operator and task name are required", ErrInvalidInput)
	}
	freq, ok := ParseFrequency(string(t.Frequency))
	if !ok {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, t.Frequency)
	}
	t.Frequency = freq
	return nil
}

// OperatorTodo is one dated occurrence of an operator task.
type OperatorTodo struct {
	ID        int64      `json:"id" db:"id"`
	TaskID    int64      `json:"task_id" db:"task_id"`
	Operator  string     `json:"operator" db:"operator"`
	TaskName  string     `json:"task_name" db:"task_name"`
	Frequency Frequency  `json:"frequency" db:"frequency"`
	DueDate   Date       `json:"due_date" db:"due_date"`
	Status    string     `json:"status" db:"status"`
	DoneAt    *time.Time `json:"done_at" db:"done_at"`
	Notes     string     `json:"notes" db:"notes"`
}

// TodoFilter narrows to-do listings. Zero values match everything.
type TodoFilter struct {
	Operator string
	Status   string
	From     Date
	To       Date
}

// WaterQualitySample is a lab measurement at one sampling point.
type WaterQualitySample struct {
	ID            int64     `json:"id" db:"id"`
	SampleDate    Date      `json:"sample_date" db:"sample_date"`
	SampleTime    string    `json:"sample_time" db:"sample_time"`
	SamplingPoint string    `json:"sampling_point" db:"sampling_point"`
	TDS           float64   `json:"tds" db:"tds"`
	PH            float64   `json:"ph" db:"ph"`
	Conductivity  float64   `json:"conductivity" db:"conductivity"`
	Turbidity     float64   `json:"turbidity" db:"turbidity"`
	Operator      string    `json:"operator" db:"operator"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (s *WaterQualitySample) Normalize() error {
	if s.SampleDate.IsZero() {
		return fmt.Errorf("%w: sample date is required", ErrInvalidInput)
	}
	point, ok := ParseSamplingPoint(s.SamplingPoint)
	if !ok {
		return fmt.Errorf("%w: unknown sampling point %q", ErrInvalidInput, s.SamplingPoint)
	}
	s.SamplingPoint = point
	if s.PH < 0 || s.PH > 14 {
		return fmt.Errorf("%w: pH %.2f outside 0-14", ErrInvalidInput, s.PH)
	}
	if s.TDS < 0 || s.Conductivity < 0 || s.Turbidity < 0 {
		return fmt.Errorf("%w: measurements must not be negative", ErrInvalidInput)
	}
	return nil
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year int, month time.Month) DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: Date{first}, To: Date{first.AddDate(0, 1, -1)}}
}

func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}
	if r.To.Before(r.From.Time) {
		return fmt.Errorf("%w: range end %s before start %s", ErrInvalidInput, r.To, r.From)
	}
	return nil
}
