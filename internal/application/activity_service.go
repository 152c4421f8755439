package application

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
)

// MediaStore persists uploaded activity media and serves it at a public URL.
type MediaStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

// ActivityIndex mirrors activities into a search index.
type ActivityIndex interface {
	Index(ctx context.Context, a *entity.Activity) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int, publicOnly bool) ([]*entity.Activity, error)
}

type ActivityService struct {
	Repo   repository.ActivityRepository
	Media  MediaStore
	Index  ActivityIndex
	Logger *logrus.Logger
}

func NewActivityService(repo repository.ActivityRepository, media MediaStore, index ActivityIndex, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Repo: repo, Media: media, Index: index, Logger: logger}
}

// MediaUpload is an incoming file attached to a new activity.
type MediaUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CreateActivityInput struct {
	Title       string
	Description string
	IsPublic    bool
	CreatedBy   string
	EventDate   *time.Time
	Media       *MediaUpload
}

// Create stores the activity, uploading any attached media first. Indexing
// failures are logged but never fail the write.
func (s *ActivityService) Create(ctx context.Context, in CreateActivityInput) (*entity.Activity, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ValidationError("title is required")
	}

	a := &entity.Activity{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		IsPublic:    in.IsPublic,
		CreatedBy:   in.CreatedBy,
		EventDate:   in.EventDate,
	}

	if in.Media != nil {
		kind := mediaKind(in.Media.ContentType)
		if kind == "" {
			return nil, ValidationError("unsupported media type " + in.Media.ContentType)
		}
		objectPath := "activities/" + uuid.NewString() + strings.ToLower(path.Ext(in.Media.Filename))
		url, err := s.Media.Upload(ctx, objectPath, in.Media.ContentType, in.Media.Reader)
		if err != nil {
			return nil, err
		}
		a.MediaURL = url
		a.MediaType = kind
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		if a.MediaURL != "" {
			if rmErr := s.Media.Remove(ctx, a.MediaURL); rmErr != nil {
				s.Logger.WithError(rmErr).Warn("orphaned media cleanup failed")
			}
		}
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Index(ctx, a); err != nil {
			s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("activity index failed")
		}
	}
	return a, nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *ActivityService) List(ctx context.Context, limit int, isAdmin bool) ([]*entity.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(ctx, limit, !isAdmin)
}

// Delete removes the activity along with its stored media and search entry.
// Cleanup failures after the row is gone are logged, not returned.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	a, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}

	if a.MediaURL != "" {
		if err := s.Media.Remove(ctx, a.MediaURL); err != nil {
			s.Logger.WithError(err).WithField("activity_id", id).Warn("media cleanup failed")
		}
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("activity_id", id).Warn("index cleanup failed")
		}
	}
	return nil
}

func (s *ActivityService) Search(ctx context.Context, query string, size int, isAdmin bool) ([]*entity.Activity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ValidationError("search query is required")
	}
	if s.Index == nil {
		return nil, ErrSearchUnavailable
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, query, size, !isAdmin)
}

func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return ""
	}
}
