package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/payment"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/repo"
)

// PaymentIntentIssuer is satisfied by *payment.StripeIssuer.
type PaymentIntentIssuer interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

type PaymentUseCase interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, caller string, p *entity.Payment) error
	ListPayments(ctx context.Context, caller, email string) ([]*entity.Payment, error)
}

type paymentUseCase struct {
	payments repo.PaymentRepository
	users    repo.UserRepository
	issuer   PaymentIntentIssuer
	currency string
	logger   *logger.Logger
}

// NewPaymentUseCase accepts a nil issuer; intents then fail as upstream errors.
func NewPaymentUseCase(
	payments repo.PaymentRepository,
	users repo.UserRepository,
	issuer PaymentIntentIssuer,
	currency string,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		payments: payments,
		users:    users,
		issuer:   issuer,
		currency: strings.ToLower(currency),
		logger:   logger,
	}
}

func (uc *paymentUseCase) toMinor(price float64) (int64, error) {
	amount, err := payment.ToMinorUnits(price, uc.currency)
	if errors.Is(err, payment.ErrInvalidAmount) {
		return 0, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	return amount, err
}

// CreateIntent converts price once and hands the minor amount to the processor.
func (uc *paymentUseCase) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := uc.toMinor(price)
	if err != nil {
		return "", err
	}

	if uc.issuer == nil {
		return "", upstream(uc.logger, "create payment intent", errors.New("payment processor not configured"))
	}

	secret, err := uc.issuer.CreateIntent(ctx, amount, uc.currency)
	if err != nil {
		return "", upstream(uc.logger, "create payment intent", err)
	}
	return secret, nil
}

func (uc *paymentUseCase) RecordPayment(ctx context.Context, caller string, p *entity.Payment) error {
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	if p.TransactionID == "" {
		return fmt.Errorf("%w: transactionId is required", entity.ErrInvalidInput)
	}

	amount, err := uc.toMinor(p.Price)
	if err != nil {
		return err
	}

	p.ID = ""
	p.Email = caller
	p.AmountMinor = amount
	p.Currency = uc.currency
	p.Date = time.Now().UTC()

	if err := uc.payments.Create(ctx, p); err != nil {
		return upstream(uc.logger, "record payment", err)
	}
	uc.logger.Info("Recorded payment %s for %s", p.TransactionID, caller)
	return nil
}

func (uc *paymentUseCase) ListPayments(ctx context.Context, caller, email string) ([]*entity.Payment, error) {
	if err := selfOrAdmin(ctx, uc.users, caller, email); err != nil {
		return nil, passthrough(uc.logger, "authorize payment listing", err)
	}

	payments, err := uc.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, upstream(uc.logger, "list payments", err)
	}
	return payments, nil
}
