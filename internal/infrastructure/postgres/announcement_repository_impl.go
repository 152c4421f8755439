package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
)

const announcementCols = `id, title, message, is_public, COALESCE(created_by::text, ''),
	event_date, created_at, updated_at`

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO announcements (title, message, is_public, created_by, event_date)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Message, a.IsPublic, a.CreatedBy, a.EventDate)
	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AnnouncementRepository) List(ctx context.Context, limit int, publicOnly bool) ([]*entity.Announcement, error) {
	q := `SELECT ` + announcementCols + ` FROM announcements`
	if publicOnly {
		q += ` WHERE is_public`
	}
	q += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) (*entity.Announcement, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM announcements WHERE id = $1 RETURNING `+announcementCols, id)
	a, err := scanAnnouncement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func scanAnnouncement(row pgx.Row) (*entity.Announcement, error) {
	a := &entity.Announcement{}
	if err := row.Scan(&a.ID, &a.Title, &a.Message, &a.IsPublic, &a.CreatedBy,
		&a.EventDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

var _ repository.AnnouncementRepository = (*AnnouncementRepository)(nil)
