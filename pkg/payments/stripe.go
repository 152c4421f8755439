// Package payments wraps the Stripe SDK behind the small surface the
// donation service needs: hosted checkout session creation and webhook
// event verification.
package payments

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CheckoutRequest describes a donation checkout to create.
type CheckoutRequest struct {
	AmountMinor int64 // smallest currency unit
	Currency    string
	Email       string // optional, prefilled on the Stripe page
}

// CompletedCheckout is the subset of a finished checkout session the
// donation service records.
type CompletedCheckout struct {
	SessionID     string
	AmountMinor   int64
	Currency      string
	Email         string
	PaymentIntent string
}

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(secretKey, webhookSecret, successURL, cancelURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckoutSession creates a hosted checkout session and returns its
// redirect URL.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Donation"),
					},
					UnitAmount: stripe.Int64(req.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.AddMetadata("project", "donation-site")

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// ParseCompletedCheckout verifies the webhook signature and, when the event
// is a completed checkout session, returns its details. Other event types
// return (nil, nil): acknowledged but not acted on.
func (g *StripeGateway) ParseCompletedCheckout(payload []byte, sigHeader string) (*CompletedCheckout, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, err
	}
	if event.Type != "checkout.session.completed" {
		return nil, nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, err
	}
	out := &CompletedCheckout{
		SessionID:   sess.ID,
		AmountMinor: sess.AmountTotal,
		Currency:    string(sess.Currency),
	}
	if sess.CustomerDetails != nil {
		out.Email = sess.CustomerDetails.Email
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntent = sess.PaymentIntent.ID
	}
	return out, nil
}
