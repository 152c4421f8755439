package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/domain/repository"
	"github.com/seva-samiti/connect-backend/pkg/payments"
)

// PaymentGateway is the slice of the Stripe adapter the donation service
// uses; kept as an interface so tests can run without the SDK.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payments.CheckoutRequest) (string, error)
	ParseCompletedCheckout(payload []byte, sigHeader string) (*payments.CompletedCheckout, error)
}

type DonationService struct {
	Repo    repository.DonationRepository
	Gateway PaymentGateway
	Logger  *logrus.Logger
}

func NewDonationService(repo repository.DonationRepository, gw PaymentGateway, logger *logrus.Logger) *DonationService {
	return &DonationService{Repo: repo, Gateway: gw, Logger: logger}
}

// List returns donations matching the filter. Callers without admin rights
// only ever see public donations regardless of the requested filter.
func (s *DonationService) List(ctx context.Context, f entity.DonationFilter, isAdmin bool) ([]*entity.Donation, error) {
	if !isAdmin {
		f.PublicOnly = true
	}
	return s.Repo.List(ctx, f)
}

func (s *DonationService) RecentPublic(ctx context.Context, limit int) ([]*entity.Donation, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.ListRecentPublic(ctx, limit)
}

func (s *DonationService) ByUser(ctx context.Context, userID string) ([]*entity.Donation, error) {
	return s.Repo.List(ctx, entity.DonationFilter{UserID: userID})
}

func (s *DonationService) ByEmail(ctx context.Context, email string) ([]*entity.Donation, error) {
	return s.Repo.List(ctx, entity.DonationFilter{Email: normalizeEmail(email)})
}

func (s *DonationService) Get(ctx context.Context, id string) (*entity.Donation, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// UpdateDonationInput carries a partial update; nil fields stay unchanged.
type UpdateDonationInput struct {
	Donor    *string
	Amount   *float64
	Type     *string
	Date     *string
	Status   *string
	Receipt  *string
	UserID   *string
	Email    *string
	IsPublic *bool
	Note     *string
}

func (s *DonationService) Update(ctx context.Context, id string, in UpdateDonationInput) (*entity.Donation, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&d.Donor, in.Donor)
	apply(&d.Type, in.Type)
	apply(&d.Date, in.Date)
	apply(&d.Status, in.Status)
	apply(&d.Receipt, in.Receipt)
	apply(&d.UserID, in.UserID)
	apply(&d.Email, in.Email)
	apply(&d.Note, in.Note)
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, ValidationError("amount must not be negative")
		}
		d.Amount = *in.Amount
	}
	if in.IsPublic != nil {
		d.IsPublic = *in.IsPublic
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DonationService) Delete(ctx context.Context, id string) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// CreateCheckout opens a hosted payment session for the given amount
// (major currency units) and returns the redirect URL.
func (s *DonationService) CreateCheckout(ctx context.Context, amount float64, currency, email string) (string, error) {
	if amount <= 0 {
		return "", ValidationError("valid amount is required")
	}
	if currency == "" {
		currency = "inr"
	}
	url, err := s.Gateway.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		AmountMinor: int64(math.Round(amount * 100)),
		Currency:    currency,
		Email:       email,
	})
	if err != nil {
		s.Logger.WithError(err).Error("create checkout session failed")
		return "", err
	}
	return url, nil
}

// HandleWebhook verifies a payment webhook and records the donation when a
// checkout session completed. Other event types are acknowledged silently.
func (s *DonationService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	done, err := s.Gateway.ParseCompletedCheckout(payload, sigHeader)
	if err != nil {
		return err
	}
	if done == nil {
		return nil
	}

	seq, err := s.Repo.NextSeq(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	id := fmt.Sprintf("DN%04d", seq)
	d := &entity.Donation{
		ID:       id,
		Donor:    "Anonymous",
		Amount:   float64(done.AmountMinor) / 100,
		Type:     "online",
		Date:     now.Format("2006-01-02"),
		Status:   "Completed",
		Receipt:  fmt.Sprintf("RC_%s_%d.pdf", id, now.Year()),
		Email:    done.Email,
		IsPublic: true,
		Note:     "payment ref " + done.PaymentIntent,
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{
		"donation_id": d.ID,
		"amount":      d.Amount,
		"currency":    done.Currency,
	}).Info("donation recorded from checkout")
	return nil
}
