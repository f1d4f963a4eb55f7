package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentModel struct {
	ID            string  `gorm:"type:uuid;primary_key"`
	Email         string  `gorm:"type:varchar(320);not null;index"`
	Name          string  `gorm:"type:varchar(255)"`
	Price         float64 `gorm:"type:numeric(12,2);not null"`
	AmountMinor   int64   `gorm:"not null"`
	Currency      string  `gorm:"type:varchar(3);not null"`
	TransactionID string  `gorm:"type:varchar(255);not null"`
	Date          time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
