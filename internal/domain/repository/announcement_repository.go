package repository

import (
	"context"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) error
	List(ctx context.Context, limit int, publicOnly bool) ([]*entity.Announcement, error)
	Delete(ctx context.Context, id string) (*entity.Announcement, error)
}
