package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func TestReadingRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReadingRepository(db)

	created := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO readings (.+) ON CONFLICT \(reading_date\)`).
		WithArgs("2025-08-01", 32.0, 7.1, 64.0, 200.0, 180.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	reading := &domain.Reading{ReadingDate: mustDate(t, "2025-08-01"), TDS: 32, PH: 7.1, Conductivity: 64, FlowM3: 200, Production: 180}
	require.NoError(t, repo.Upsert(context.Background(), reading))
	assert.Equal(t, int64(1), reading.ID)
	assert.Equal(t, created, reading.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingRepository_UpsertMany_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReadingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO readings`).
		WithArgs("2025-08-01", 30.0, 7.0, 0.0, 0.0, 0.0, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO readings`).
		WithArgs("2025-08-02", 31.0, 7.1, 0.0, 0.0, 0.0, "", "").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	readings := []domain.Reading{
		{ReadingDate: mustDate(t, "2025-08-01"), TDS: 30, PH: 7},
		{ReadingDate: mustDate(t, "2025-08-02"), TDS: 31, PH: 7.1},
	}
	saved, err := repo.UpsertMany(context.Background(), readings)
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 0, saved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingRepository_UpsertMany(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReadingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO readings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO readings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))
	mock.ExpectCommit()

	readings := []domain.Reading{
		{ReadingDate: mustDate(t, "2025-08-01"), TDS: 30, PH: 7},
		{ReadingDate: mustDate(t, "2025-08-02"), TDS: 31, PH: 7.1},
	}
	saved, err := repo.UpsertMany(context.Background(), readings)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Equal(t, int64(2), readings[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingRepository_Latest_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReadingRepository(db)

	mock.ExpectQuery(`FROM readings\s+ORDER BY reading_date DESC\s+LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingRepository_ListRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReadingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "reading_date", "tds", "ph", "conductivity", "flow_m3", "production", "maintenance", "notes", "created_at"}).
		AddRow(int64(1), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 30.0, 7.0, 60.0, 0.0, 150.0, "Backwash", "", time.Now()).
		AddRow(int64(2), time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), 55.0, 7.0, 110.0, 0.0, 160.0, "", "", time.Now())

	mock.ExpectQuery(`WHERE reading_date BETWEEN \$1 AND \$2`).
		WithArgs("2025-08-01", "2025-08-31").
		WillReturnRows(rows)

	readings, err := repo.ListRange(context.Background(), domain.MonthRange(2025, time.August))
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "Backwash", readings[0].Maintenance)
	assert.Equal(t, 55.0, readings[1].TDS)
	require.NoError(t, mock.ExpectationsWereMet())
}
