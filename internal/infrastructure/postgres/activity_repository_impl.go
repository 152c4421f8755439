package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
)

const activityCols = `id, title, description, media_url, media_type, is_public,
	COALESCE(created_by::text, ''), event_date, created_at, updated_at`

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (title, description, media_url, media_type, is_public, created_by, event_date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Description, a.MediaURL, a.MediaType, a.IsPublic, a.CreatedBy, a.EventDate)
	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+activityCols+` FROM activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *ActivityRepository) List(ctx context.Context, limit int, publicOnly bool) ([]*entity.Activity, error) {
	q := `SELECT ` + activityCols + ` FROM activities`
	if publicOnly {
		q += ` WHERE is_public`
	}
	q += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes the row and returns the deleted record so callers can clean
// up any stored media.
func (r *ActivityRepository) Delete(ctx context.Context, id string) (*entity.Activity, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM activities WHERE id = $1 RETURNING `+activityCols, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	a := &entity.Activity{}
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.MediaURL, &a.MediaType,
		&a.IsPublic, &a.CreatedBy, &a.EventDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
