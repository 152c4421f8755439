package repository

import (
	"context"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	List(ctx context.Context, limit int, publicOnly bool) ([]*entity.Activity, error)
	Delete(ctx context.Context, id string) (*entity.Activity, error)
}
