package service

import "github.com/omarembaby39-afk/UMQASR-RO/internal/domain"

// DefaultChemicals is the chemical list of a fresh plant. The chlorine row
// carries its own thresholds; the classifier treats it like any other rule.
var DefaultChemicals = []domain.Chemical{
	{Name: "Sodium Hypochlorite (Chlorine)", MinLevel: 50, MaxLevel: 400, WarnLevel: 80},
	{Name: "Hydrochloric Acid (HCL)", MinLevel: 30, MaxLevel: 300},
	{Name: "Antiscalant PC-391", MinLevel: 25, MaxLevel: 200},
	{Name: "Sodium Metabisulfite (SMBS)", MinLevel: 25, MaxLevel: 200},
	{Name: "Caustic Soda (NaOH)", MinLevel: 20, MaxLevel: 200},
}

// DefaultMaintenanceTasks is the built-in preventive maintenance catalog.
var DefaultMaintenanceTasks = []domain.MaintenanceTask{
	{TaskName: "Record feed and permeate pressures", Category: "Inspection", IntervalDays: 1, Priority: "Medium", EstHours: 0.25, Active: true},
	{TaskName: "Check dosing pump strokes and tank levels", Category: "Dosing", IntervalDays: 1, Priority: "High", EstHours: 0.5, Active: true},
	{TaskName: "Inspect high pressure pump for leaks and noise", Category: "Mechanical", IntervalDays: 7, Priority: "High", EstHours: 0.5, Active: true},
	{TaskName: "Clean feed inlet strainer", Category: "Pretreatment", IntervalDays: 7, Priority: "Medium", EstHours: 1, Active: true},
	{TaskName: "Backwash multimedia filter", Category: "Pretreatment", IntervalDays: 7, Priority: "Medium", EstHours: 1, Active: true},
	{TaskName: "Calibrate TDS and pH meters", Category: "Instrumentation", IntervalDays: 30, Priority: "Medium", EstHours: 1, Active: true},
	{TaskName: "Replace cartridge filters", Category: "Pretreatment", IntervalDays: 30, Priority: "High", EstHours: 1.5, Active: true},
	{TaskName: "Inspect electrical panel and motor terminals", Category: "Electrical", IntervalDays: 90, Priority: "Medium", EstHours: 2, Active: true},
	{TaskName: "Membrane CIP cleaning", Category: "Membranes", IntervalDays: 90, Priority: "High", EstHours: 6, Active: true},
	{TaskName: "Replace activated carbon media", Category: "Pretreatment", IntervalDays: 365, Priority: "Low", EstHours: 8, Active: true},
}

// defaultOperatorTasks is the checklist every configured operator receives.
var defaultOperatorTasks = []struct {
	name string
	freq domain.Frequency
}{
	{"Log TDS, pH and conductivity", domain.FrequencyDaily},
	{"Read flowmeter totalizer", domain.FrequencyDaily},
	{"Check cartridge filter pressures", domain.FrequencyDaily},
	{"Inspect chemical day tanks", domain.FrequencyWeekly},
	{"Take feed, permeate and reject samples", domain.FrequencyWeekly},
	{"Clean plant room and skid", domain.FrequencyMonthly},
}
