package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
)

const donationCols = `id, donor, amount, type, date, status, receipt,
	COALESCE(user_id, ''), COALESCE(email, ''), is_public, COALESCE(note, ''),
	created_at, updated_at`

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('donation_seq')`).Scan(&seq)
	return seq, err
}

func (r *DonationRepository) Create(ctx context.Context, d *entity.Donation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO donations (id, donor, amount, type, date, status, receipt, user_id, email, is_public, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''))
		RETURNING created_at, updated_at
	`, d.ID, d.Donor, d.Amount, d.Type, d.Date, d.Status, d.Receipt, d.UserID, d.Email, d.IsPublic, d.Note)
	return row.Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*entity.Donation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+donationCols+` FROM donations WHERE id = $1`, id)
	d, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *DonationRepository) List(ctx context.Context, f entity.DonationFilter) ([]*entity.Donation, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.PublicOnly {
		where = append(where, "is_public")
	}
	if f.MinAmount != nil {
		add("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", *f.MaxAmount)
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Email != "" {
		add("email = $%d", f.Email)
	}

	q := `SELECT ` + donationCols + ` FROM donations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	return r.queryMany(ctx, q, args...)
}

func (r *DonationRepository) ListRecentPublic(ctx context.Context, limit int) ([]*entity.Donation, error) {
	return r.queryMany(ctx, `
		SELECT `+donationCols+` FROM donations
		WHERE is_public
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *DonationRepository) Update(ctx context.Context, d *entity.Donation) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE donations
		SET donor = $2, amount = $3, type = $4, date = $5, status = $6, receipt = $7,
		    user_id = NULLIF($8, ''), email = NULLIF($9, ''), is_public = $10, note = NULLIF($11, ''),
		    updated_at = now()
		WHERE id = $1
	`, d.ID, d.Donor, d.Amount, d.Type, d.Date, d.Status, d.Receipt, d.UserID, d.Email, d.IsPublic, d.Note)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DonationRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *DonationRepository) queryMany(ctx context.Context, q string, args ...any) ([]*entity.Donation, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDonation(row pgx.Row) (*entity.Donation, error) {
	d := &entity.Donation{}
	if err := row.Scan(&d.ID, &d.Donor, &d.Amount, &d.Type, &d.Date, &d.Status, &d.Receipt,
		&d.UserID, &d.Email, &d.IsPublic, &d.Note, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

var _ repository.DonationRepository = (*DonationRepository)(nil)
