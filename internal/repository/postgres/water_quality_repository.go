package postgres

import (
	"context"
	"fmt"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

type waterQualityRepository struct {
	db *DB
}

func NewWaterQualityRepository(db *DB) *waterQualityRepository {
	return &waterQualityRepository{db: db}
}

func (r *waterQualityRepository) Insert(ctx context.Context, sample *domain.WaterQualitySample) error {
	query := `
		INSERT INTO water_quality (
			sample_date, sample_time, sampling_point, tds, ph,
			conductivity, turbidity, operator, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		sample.SampleDate,
		sample.SampleTime,
		sample.SamplingPoint,
		sample.TDS,
		sample.PH,
		sample.Conductivity,
		sample.Turbidity,
		sample.Operator,
		sample.Notes,
	).Scan(&sample.ID, &sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting water quality sample: %w", err)
	}
	return nil
}

func (r *waterQualityRepository) ListRange(ctx context.Context, rng domain.DateRange) ([]domain.WaterQualitySample, error) {
	query := `
		SELECT
			id, sample_date, sample_time, sampling_point, tds, ph,
			conductivity, turbidity, operator, notes, created_at
		FROM water_quality
		WHERE sample_date BETWEEN $1 AND $2
		ORDER BY sample_date, sample_time, sampling_point
	`

	samples := []domain.WaterQualitySample{}
	if err := r.db.SelectContext(ctx, &samples, query, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("error listing water quality samples: %w", err)
	}
	return samples, nil
}
