package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/pkg/payments"
)

type fakeDonationRepo struct {
	rows map[string]*entity.Donation
	seq  int64

	lastFilter entity.DonationFilter
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{rows: map[string]*entity.Donation{}}
}

func (r *fakeDonationRepo) Create(_ context.Context, d *entity.Donation) error {
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeDonationRepo) GetByID(_ context.Context, id string) (*entity.Donation, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDonationRepo) List(_ context.Context, f entity.DonationFilter) ([]*entity.Donation, error) {
	r.lastFilter = f
	out := []*entity.Donation{}
	for _, d := range r.rows {
		if f.PublicOnly && !d.IsPublic {
			continue
		}
		if f.UserID != "" && d.UserID != f.UserID {
			continue
		}
		if f.Email != "" && d.Email != f.Email {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDonationRepo) ListRecentPublic(ctx context.Context, limit int) ([]*entity.Donation, error) {
	all, _ := r.List(ctx, entity.DonationFilter{PublicOnly: true})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeDonationRepo) Update(_ context.Context, d *entity.Donation) error {
	if _, ok := r.rows[d.ID]; !ok {
		return errors.New("no such donation")
	}
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeDonationRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeDonationRepo) NextSeq(_ context.Context) (int64, error) {
	r.seq++
	return r.seq, nil
}

type fakeGateway struct {
	lastReq   payments.CheckoutRequest
	completed *payments.CompletedCheckout
	parseErr  error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payments.CheckoutRequest) (string, error) {
	g.lastReq = req
	return "https://checkout.example/session", nil
}

func (g *fakeGateway) ParseCompletedCheckout(_ []byte, _ string) (*payments.CompletedCheckout, error) {
	return g.completed, g.parseErr
}

func newDonationService() (*DonationService, *fakeDonationRepo, *fakeGateway) {
	repo := newFakeDonationRepo()
	gw := &fakeGateway{}
	return NewDonationService(repo, gw, testLogger()), repo, gw
}

func TestListForcesPublicForNonAdmins(t *testing.T) {
	svc, repo, _ := newDonationService()
	repo.rows["DN0001"] = &entity.Donation{ID: "DN0001", IsPublic: true}
	repo.rows["DN0002"] = &entity.Donation{ID: "DN0002", IsPublic: false}

	got, err := svc.List(context.Background(), entity.DonationFilter{}, false)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, repo.lastFilter.PublicOnly)

	got, err = svc.List(context.Background(), entity.DonationFilter{}, true)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateCheckoutConvertsToMinorUnits(t *testing.T) {
	svc, _, gw := newDonationService()

	url, err := svc.CreateCheckout(context.Background(), 251.50, "", "donor@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/session", url)
	assert.Equal(t, int64(25150), gw.lastReq.AmountMinor)
	assert.Equal(t, "inr", gw.lastReq.Currency)
	assert.Equal(t, "donor@example.com", gw.lastReq.Email)

	_, err = svc.CreateCheckout(context.Background(), 0, "inr", "")
	assert.True(t, IsValidation(err))
}

func TestWebhookRecordsCompletedCheckout(t *testing.T) {
	svc, _, gw := newDonationService()
	gw.completed = &payments.CompletedCheckout{
		SessionID:     "cs_123",
		AmountMinor:   50000,
		Currency:      "inr",
		Email:         "donor@example.com",
		PaymentIntent: "pi_123",
	}

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	d, err := svc.Get(context.Background(), "DN0001")
	require.NoError(t, err)
	assert.Equal(t, 500.0, d.Amount)
	assert.Equal(t, "Completed", d.Status)
	assert.Equal(t, "online", d.Type)
	assert.True(t, d.IsPublic)
	assert.Regexp(t, `^RC_DN0001_\d{4}\.pdf$`, d.Receipt)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	svc, repo, gw := newDonationService()
	gw.completed = nil

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	assert.Empty(t, repo.rows)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, _, gw := newDonationService()
	gw.parseErr = errors.New("bad signature")

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	assert.Error(t, err)
}

func TestUpdateDonationPartial(t *testing.T) {
	svc, repo, _ := newDonationService()
	repo.rows["DN0001"] = &entity.Donation{ID: "DN0001", Donor: "Old", Amount: 100, IsPublic: true}

	donor := "New Donor"
	hidden := false
	got, err := svc.Update(context.Background(), "DN0001", UpdateDonationInput{Donor: &donor, IsPublic: &hidden})
	require.NoError(t, err)
	assert.Equal(t, "New Donor", got.Donor)
	assert.False(t, got.IsPublic)
	assert.Equal(t, 100.0, got.Amount)

	neg := -5.0
	_, err = svc.Update(context.Background(), "DN0001", UpdateDonationInput{Amount: &neg})
	assert.True(t, IsValidation(err))

	_, err = svc.Update(context.Background(), "DN9999", UpdateDonationInput{Donor: &donor})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDonation(t *testing.T) {
	svc, repo, _ := newDonationService()
	repo.rows["DN0001"] = &entity.Donation{ID: "DN0001"}

	require.NoError(t, svc.Delete(context.Background(), "DN0001"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "DN0001"), ErrNotFound)
}
