package legacy

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func newLegacyDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE readings (id INTEGER PRIMARY KEY, d TEXT, tds REAL, ph REAL, production REAL, notes TEXT)`)
	db.MustExec(`INSERT INTO readings (d, tds, ph, production, notes) VALUES
		('2025-08-01', 31.5, 7.2, 110, 'ok'),
		('2025-08-02 00:00:00', 29, 7.0, 95, NULL),
		('', 40, 7.1, 0, 'no date')`)

	db.MustExec(`CREATE TABLE cartridge (id INTEGER PRIMARY KEY, d TEXT, dp REAL, remarks TEXT, is_change INTEGER, change_cost REAL)`)
	db.MustExec(`INSERT INTO cartridge (d, dp, remarks, is_change, change_cost) VALUES ('2025-08-03', 4.5, 'replaced', 1, 120)`)

	db.MustExec(`CREATE TABLE chemicals (name TEXT PRIMARY KEY, qty REAL, unit_cost REAL)`)
	db.MustExec(`INSERT INTO chemicals (name, qty, unit_cost) VALUES ('HCL', 60, 2.5), ('  ', 1, 1)`)

	db.MustExec(`CREATE TABLE chemical_movements (id INTEGER PRIMARY KEY, d TEXT, name TEXT, movement_type TEXT, qty REAL, remarks TEXT)`)
	db.MustExec(`INSERT INTO chemical_movements (d, name, movement_type, qty, remarks) VALUES
		('2025-08-05', 'HCL', 'OUT', 30, 'dosing'),
		('2025-08-01', 'HCL', 'in', 100, 'delivery'),
		('2025-08-06', 'HCL', 'TRANSFER', 5, 'bad type')`)
	return db
}

func TestLoad(t *testing.T) {
	snap, err := Load(context.Background(), newLegacyDB(t))
	require.NoError(t, err)

	require.Len(t, snap.Readings, 2)
	assert.Equal(t, "2025-08-02", snap.Readings[1].ReadingDate.String())
	assert.Equal(t, 31.5, snap.Readings[0].TDS)
	assert.Equal(t, "", snap.Readings[1].Notes)

	require.Len(t, snap.Cartridges, 1)
	assert.True(t, snap.Cartridges[0].IsChange)
	assert.Equal(t, 4.5, snap.Cartridges[0].DP)
	assert.Equal(t, 120.0, snap.Cartridges[0].ChangeCost)

	require.Len(t, snap.Chemicals, 1)
	assert.Equal(t, "HCL", snap.Chemicals[0].Name)

	require.Len(t, snap.Movements, 2)
	assert.Equal(t, domain.MovementIn, snap.Movements[0].MovementType)
	assert.Equal(t, 100.0, snap.Movements[0].BalanceAfter)
	assert.Equal(t, 70.0, snap.Movements[1].BalanceAfter)

	// blank reading date, blank chemical name, unknown movement type
	assert.Equal(t, 3, snap.Skipped)
}

func TestLoad_MissingTables(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	snap, err := Load(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, snap.Readings)
	assert.Empty(t, snap.Movements)
}

func TestCoercion(t *testing.T) {
	assert.Equal(t, 3.0, floatOf(int64(3)))
	assert.Equal(t, 2.5, floatOf([]byte("2.5")))
	assert.Equal(t, 0.0, floatOf("n/a"))
	assert.Equal(t, "abc", stringOf([]byte("abc")))

	_, ok := dateOf(nil)
	assert.False(t, ok)
}
