package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
)

type AnnouncementService struct {
	Repo   repository.AnnouncementRepository
	Logger *logrus.Logger
}

func NewAnnouncementService(repo repository.AnnouncementRepository, logger *logrus.Logger) *AnnouncementService {
	return &AnnouncementService{Repo: repo, Logger: logger}
}

type CreateAnnouncementInput struct {
	Title     string
	Message   string
	IsPublic  bool
	CreatedBy string
	EventDate *time.Time
}

func (s *AnnouncementService) Create(ctx context.Context, in CreateAnnouncementInput) (*entity.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, ValidationError("title and message are required")
	}
	a := &entity.Announcement{
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		IsPublic:  in.IsPublic,
		CreatedBy: in.CreatedBy,
		EventDate: in.EventDate,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.WithField("announcement_id", a.ID).Info("announcement published")
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, limit int, isAdmin bool) ([]*entity.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(ctx, limit, !isAdmin)
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	a, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	return nil
}
