package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrInvalidAmount = errors.New("amount must be a positive finite number")

// Currencies that Stripe charges in whole units.
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// ToMinorUnits converts a price in major units (dollars) to the integer
// amount the processor expects (cents), rounding half away from zero.
func ToMinorUnits(major float64, currency string) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) || major <= 0 {
		return 0, ErrInvalidAmount
	}

	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return int64(math.Round(major)), nil
	}
	minor := int64(math.Round(major * 100))
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

type StripeIssuer struct {
	api *client.API
}

func NewStripeIssuer(secretKey string) *StripeIssuer {
	return &StripeIssuer{api: client.New(secretKey, nil)}
}

func (s *StripeIssuer) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(strings.ToLower(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}
