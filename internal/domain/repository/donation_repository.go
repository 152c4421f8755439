package repository

import (
	"context"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
)

type DonationRepository interface {
	Create(ctx context.Context, d *entity.Donation) error
	GetByID(ctx context.Context, id string) (*entity.Donation, error)
	List(ctx context.Context, f entity.DonationFilter) ([]*entity.Donation, error)
	ListRecentPublic(ctx context.Context, limit int) ([]*entity.Donation, error)
	Update(ctx context.Context, d *entity.Donation) error
	Delete(ctx context.Context, id string) (bool, error)
	// NextSeq allocates the next receipt number (DN0001, ...).
	NextSeq(ctx context.Context) (int64, error)
}
