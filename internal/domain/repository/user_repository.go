package repository

import (
	"context"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
)

// UserRepository is the store the identity service runs against.
// Lookups by email expect the address already normalized to lower case;
// a missing record is returned as (nil, nil), not an error.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone *string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
