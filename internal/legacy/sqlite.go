// Package legacy reads the SQLite database of the single-user desktop
// version of the plant log so its history can be moved to Postgres.
package legacy

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/calc"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

// Snapshot is everything read from a legacy database.
type Snapshot struct {
	Readings   []domain.Reading
	Cartridges []domain.CartridgeRecord
	Chemicals  []domain.Chemical
	Movements  []domain.ChemicalMovement
	Skipped    int
}

func Open(fileName string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite %s: %w", fileName, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error opening sqlite %s: %w", fileName, err)
	}
	return db, nil
}

// Load reads the readings, cartridge, chemicals and chemical_movements
// tables. Missing tables and columns are tolerated; rows without a usable
// date are counted in Skipped.
func Load(ctx context.Context, db *sqlx.DB) (*Snapshot, error) {
	snap := &Snapshot{}

	rows, err := loadTable(ctx, db, "readings")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		d, ok := dateOf(row["d"])
		if !ok {
			snap.Skipped++
			continue
		}
		snap.Readings = append(snap.Readings, domain.Reading{
			ReadingDate:  d,
			TDS:          floatOf(row["tds"]),
			PH:           floatOf(row["ph"]),
			Conductivity: floatOf(row["conductivity"]),
			FlowM3:       floatOf(row["flow_m3"]),
			Production:   floatOf(row["production"]),
			Maintenance:  stringOf(row["maintenance"]),
			Notes:        stringOf(row["notes"]),
		})
	}

	rows, err = loadTable(ctx, db, "cartridge")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		d, ok := dateOf(row["d"])
		if !ok {
			snap.Skipped++
			continue
		}
		// Only the differential survives in legacy rows.
		dp := floatOf(row["dp"])
		snap.Cartridges = append(snap.Cartridges, domain.CartridgeRecord{
			RecordDate:     d,
			PressureBefore: dp,
			DP:             dp,
			Remarks:        stringOf(row["remarks"]),
			IsChange:       floatOf(row["is_change"]) != 0,
			ChangeCost:     floatOf(row["change_cost"]),
		})
	}

	rows, err = loadTable(ctx, db, "chemicals")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		name := strings.TrimSpace(stringOf(row["name"]))
		if name == "" {
			snap.Skipped++
			continue
		}
		snap.Chemicals = append(snap.Chemicals, domain.Chemical{
			Name:     name,
			Qty:      floatOf(row["qty"]),
			UnitCost: floatOf(row["unit_cost"]),
		})
	}

	rows, err = loadTable(ctx, db, "chemical_movements")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		d, ok := dateOf(row["d"])
		kind, kindErr := domain.ParseMovementType(stringOf(row["movement_type"]))
		name := strings.TrimSpace(stringOf(row["name"]))
		if !ok || kindErr != nil || name == "" {
			snap.Skipped++
			continue
		}
		snap.Movements = append(snap.Movements, domain.ChemicalMovement{
			MovementDate: d,
			ChemicalName: name,
			MovementType: kind,
			Qty:          floatOf(row["qty"]),
			Remarks:      stringOf(row["remarks"]),
		})
	}
	replayBalances(snap.Movements)

	return snap, nil
}

// replayBalances fills BalanceAfter by posting the movements in date order
// from a zero opening balance per chemical.
func replayBalances(movements []domain.ChemicalMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].MovementDate.Before(movements[j].MovementDate.Time)
	})

	balances := make(map[string]float64)
	for i := range movements {
		m := &movements[i]
		balances[m.ChemicalName] = calc.ApplyMovement(balances[m.ChemicalName], m.MovementType, m.Qty)
		m.BalanceAfter = balances[m.ChemicalName]
	}
}

func loadTable(ctx context.Context, db *sqlx.DB, table string) ([]map[string]interface{}, error) {
	var exists int
	err := db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
	if err != nil {
		return nil, fmt.Errorf("error inspecting sqlite schema: %w", err)
	}
	if exists == 0 {
		log.Warn().Str("table", table).Msg("legacy table missing, skipping")
		return nil, nil
	}

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", table, err)
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	log.Info().Str("table", table).Int("rows", len(out)).Msg("loaded legacy table")
	return out, nil
}

func dateOf(v interface{}) (domain.Date, bool) {
	switch t := v.(type) {
	case time.Time:
		return domain.NewDate(t), true
	case nil:
		return domain.Date{}, false
	}
	d, err := domain.ParseDate(stringOf(v))
	if err != nil {
		return domain.Date{}, false
	}
	return d, true
}

func floatOf(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case nil:
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(stringOf(v)), 64)
	if err != nil {
		return 0
	}
	return f
}

func stringOf(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
