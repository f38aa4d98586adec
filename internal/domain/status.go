package domain

import (
	"fmt"
	"strings"
)

// MovementType is the direction of a chemical stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// ParseMovementType returns the movement type for a label (case-insensitive).
func ParseMovementType(label string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(label))) {
	case MovementIn:
		return MovementIn, nil
	case MovementOut:
		return MovementOut, nil
	default:
		return "", fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, label)
	}
}

// StockStatus is the band a chemical's quantity on hand falls into.
type StockStatus string

const (
	StockEmpty StockStatus = "EMPTY"
	StockLow   StockStatus = "LOW"
	StockOK    StockStatus = "OK"
	StockHigh  StockStatus = "HIGH"
)

// DPBand is the differential pressure status of the cartridge filter.
type DPBand string

const (
	DPOK      DPBand = "OK"
	DPWarning DPBand = "Warning"
	DPAlarm   DPBand = "Alarm"
)

// Severity levels shared by DP and stock indicators.
const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Work order statuses.
const (
	WorkOrderPending   = "Pending"
	WorkOrderCompleted = "Completed"
	WorkOrderCancelled = "Cancelled"
)

var workOrderStatuses = map[string]string{
	"pending":   WorkOrderPending,
	"completed": WorkOrderCompleted,
	"cancelled": WorkOrderCancelled,
	"canceled":  WorkOrderCancelled,
}

// ParseWorkOrderStatus returns the canonical work order status for a label (case-insensitive).
func ParseWorkOrderStatus(label string) (string, bool) {
	status, ok := workOrderStatuses[strings.ToLower(strings.TrimSpace(label))]
	return status, ok
}

// Operator to-do statuses.
const (
	TodoPending = "Pending"
	TodoDone    = "Done"
	TodoSkipped = "Skipped"
)

var todoStatuses = map[string]string{
	"pending": TodoPending,
	"done":    TodoDone,
	"skipped": TodoSkipped,
}

// ParseTodoStatus returns the canonical to-do status for a label (case-insensitive).
func ParseTodoStatus(label string) (string, bool) {
	status, ok := todoStatuses[strings.ToLower(strings.TrimSpace(label))]
	return status, ok
}

// Frequency is how often an operator task recurs.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency returns the frequency for a label (case-insensitive).
func ParseFrequency(label string) (Frequency, bool) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(label))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, true
	default:
		return "", false
	}
}

// Sampling points of the water quality log.
const (
	PointFeed     = "feed"
	PointPermeate = "permeate"
	PointReject   = "reject"
)

// ParseSamplingPoint returns the canonical sampling point for a label (case-insensitive).
func ParseSamplingPoint(label string) (string, bool) {
	switch p := strings.ToLower(strings.TrimSpace(label)); p {
	case PointFeed, PointPermeate, PointReject:
		return p, true
	default:
		return "", false
	}
}
