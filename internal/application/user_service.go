package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
	"github.com/seva-samiti/connect-backend/pkg/password"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

const minPasswordLen = 6

// UserService orchestrates the password hasher and token codec against the
// user store: registration, login, profile updates and password rotation.
type UserService struct {
	Repo   repository.UserRepository
	Codec  *token.Codec
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, codec *token.Codec, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Codec: codec, Logger: logger}
}

// PublicUser is the redacted view of a user record returned to clients.
// It never carries the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPublic(u *entity.User) *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) issueToken(u *entity.User) (string, error) {
	return s.Codec.Sign(token.Claims{
		Subject: u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	})
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates an account, hashes the password and issues a token.
// Email uniqueness is case-insensitive: addresses are stored lowercased.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, *PublicUser, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return "", nil, ValidationError("name, email and password are required")
	}

	email := normalizeEmail(in.Email)
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrUserExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return "", nil, err
	}

	tok, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return tok, toPublic(u), nil
}

// Login validates credentials and issues a token. An unknown email and a
// wrong password produce the same error so callers cannot probe for
// registered accounts.
func (s *UserService) Login(ctx context.Context, email, plain string) (string, *PublicUser, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !password.Verify(plain, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return tok, toPublic(u), nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toPublic(u), nil
}

type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// UpdateProfile applies a partial update. At least one field must be
// provided; a provided name must be non-empty after trimming.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*PublicUser, error) {
	var name *string
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			in.Name = nil
		} else {
			name = &trimmed
		}
	}
	if name == nil && in.Phone == nil {
		return nil, ValidationError("provide name and/or phone to update")
	}

	u, err := s.Repo.UpdateProfile(ctx, id, name, in.Phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toPublic(u), nil
}

// ChangePassword verifies the current password before replacing the stored
// hash. Once it returns nil the old password no longer verifies.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	if current == "" || next == "" {
		return ValidationError("currentPassword and newPassword are required")
	}
	if len(next) < minPasswordLen {
		return ValidationError("newPassword must be at least 6 characters")
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if !password.Verify(current, u.PasswordHash) {
		return ErrInvalidCurrentPassword
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.Logger.WithField("user_id", id).Info("password changed")
	return nil
}
