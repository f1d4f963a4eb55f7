package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"nomadnest/services/forum/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	args := m.Called(ctx, amountMinor, currency)
	return args.String(0), args.Error(1)
}

func TestPaymentUseCase_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("converts major units once", func(t *testing.T) {
		issuer := new(MockIssuer)
		issuer.On("CreateIntent", mock.Anything, int64(1999), "usd").Return("pi_secret", nil).Once()

		uc := NewPaymentUseCase(newStore().Payments, nil, issuer, "USD", testLogger())
		secret, err := uc.CreateIntent(ctx, 19.99)
		require.NoError(t, err)
		assert.Equal(t, "pi_secret", secret)
		issuer.AssertExpectations(t)
	})

	t.Run("invalid amounts never reach the issuer", func(t *testing.T) {
		issuer := new(MockIssuer)
		uc := NewPaymentUseCase(newStore().Payments, nil, issuer, "usd", testLogger())

		for _, price := range []float64{0, -5, math.NaN(), math.Inf(1)} {
			_, err := uc.CreateIntent(ctx, price)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		}
		issuer.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("processor failure is upstream", func(t *testing.T) {
		issuer := new(MockIssuer)
		issuer.On("CreateIntent", mock.Anything, int64(500), "usd").Return("", errors.New("card_declined")).Once()

		uc := NewPaymentUseCase(newStore().Payments, nil, issuer, "usd", testLogger())
		_, err := uc.CreateIntent(ctx, 5)
		assert.ErrorIs(t, err, entity.ErrUpstream)
	})

	t.Run("unconfigured processor is upstream", func(t *testing.T) {
		uc := NewPaymentUseCase(newStore().Payments, nil, nil, "usd", testLogger())
		_, err := uc.CreateIntent(ctx, 5)
		assert.ErrorIs(t, err, entity.ErrUpstream)
	})
}

func TestPaymentUseCase_RecordAndList(t *testing.T) {
	store := newStore()
	seedUser(t, store, "ana@x.io", entity.RoleUser, entity.StatusRegular)
	seedUser(t, store, "bob@x.io", entity.RoleUser, entity.StatusRegular)
	seedUser(t, store, "admin@x.io", entity.RoleAdmin, entity.StatusRegular)

	uc := NewPaymentUseCase(store.Payments, store.Users, nil, "usd", testLogger())
	ctx := context.Background()

	err := uc.RecordPayment(ctx, "ana@x.io", &entity.Payment{Price: 10})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	p := &entity.Payment{Price: 10, TransactionID: "pi_123", Email: "spoofed@x.io"}
	require.NoError(t, uc.RecordPayment(ctx, "ana@x.io", p))
	assert.Equal(t, "ana@x.io", p.Email)
	assert.Equal(t, int64(1000), p.AmountMinor)
	assert.Equal(t, "usd", p.Currency)

	payments, err := uc.ListPayments(ctx, "ana@x.io", "ana@x.io")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pi_123", payments[0].TransactionID)

	_, err = uc.ListPayments(ctx, "bob@x.io", "ana@x.io")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	payments, err = uc.ListPayments(ctx, "admin@x.io", "ana@x.io")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
