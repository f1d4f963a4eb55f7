package entity

import "time"

type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
}
