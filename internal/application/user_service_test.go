package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]*entity.User{},
		byEmail: map[string]*entity.User{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, name, phone *string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserService(t *testing.T) (*UserService, *fakeUserRepo, *token.Codec) {
	t.Helper()
	repo := newFakeUserRepo()
	codec := token.NewCodec("test-secret", time.Hour)
	return NewUserService(repo, codec, testLogger()), repo, codec
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, _, codec := newUserService(t)

	tok, user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    "Asha@Example.COM",
		Password: "secret123",
		Phone:    "+919876543210",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.False(t, user.IsAdmin)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "A@B.C", Password: "other456"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "x"})
	assert.True(t, IsValidation(err))
}

func TestLoginCollapsesFailureModes(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@b.c", "secret123")
	_, _, errWrong := svc.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)

	tok, user, err := svc.Login(context.Background(), " A@B.C ", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "a@b.c", user.Email)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "secret123", Phone: "111"})
	require.NoError(t, err)

	name := "Renamed"
	got, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "111", got.Phone)

	_, err = svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{})
	assert.True(t, IsValidation(err))

	empty := "   "
	_, err = svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Name: &empty})
	assert.True(t, IsValidation(err))
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "oldpass1"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "wrong", "newpass1")
	assert.ErrorIs(t, err, ErrInvalidCurrentPassword)

	err = svc.ChangePassword(context.Background(), u.ID, "oldpass1", "short")
	assert.True(t, IsValidation(err))

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "oldpass1", "newpass1"))

	_, _, err = svc.Login(context.Background(), "a@b.c", "oldpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "a@b.c", "newpass1")
	assert.NoError(t, err)
}

func TestGetProfileUnknown(t *testing.T) {
	svc, _, _ := newUserService(t)
	_, err := svc.GetProfile(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
