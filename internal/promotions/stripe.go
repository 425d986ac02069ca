package promotions

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrGatewayAuth marks a payment-gateway credential failure, reported to the
// caller distinctly from other gateway errors.
var ErrGatewayAuth = errors.New("payment gateway authentication failed")

// StripeOrderCreator creates promotion payment orders as Stripe
// PaymentIntents.
type StripeOrderCreator struct {
	SecretKey string

	api *client.API
}

func (s *StripeOrderCreator) client() *client.API {
	if s.api == nil {
		s.api = &client.API{}
		s.api.Init(s.SecretKey, nil)
	}
	return s.api
}

func (s *StripeOrderCreator) CreateOrder(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx, Metadata: metadata},
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
	}

	pi, err := s.client().PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 401 {
			return nil, errors.Join(ErrGatewayAuth, err)
		}
		return nil, err
	}

	return &Order{ID: pi.ID, Amount: pi.Amount, Currency: string(pi.Currency)}, nil
}
