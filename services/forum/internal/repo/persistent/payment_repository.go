package persistent

import (
	"context"
	"fmt"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/model"
	"nomadnest/services/forum/internal/repo"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentModel := ToPaymentModel(payment)
	if err := r.db.WithContext(ctx).Create(paymentModel).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	*payment = *ToPaymentEntity(paymentModel)
	return nil
}

func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("date DESC, id ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*entity.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = ToPaymentEntity(&paymentModels[i])
	}
	return payments, nil
}
