// Package models содержит доменные структуры подписок и курсов валют,
// а также DTO для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency — валюта, в которой выставляется счёт по подписке.
type Currency string

const (
	// JPY используется как валюта отчётности.
	JPY Currency = "JPY"
	// USD единственная поддерживаемая иностранная валюта.
	USD Currency = "USD"
)

// PaymentCycle — периодичность списаний.
type PaymentCycle string

const (
	// Monthly: списание каждый активный месяц.
	Monthly PaymentCycle = "MONTHLY"
	// Yearly: списание раз в год, в месяц начала подписки.
	Yearly PaymentCycle = "YEARLY"
)

// Subscription представляет регулярный платёж.
// EndDate == nil означает бессрочную подписку.
// ExchangeRate заполнен только для подписок в USD и фиксируется в момент записи.
type Subscription struct {
	ID           uuid.UUID        `json:"id"`
	ServiceName  string           `json:"service_name"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     Currency         `json:"currency"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	PaymentCycle PaymentCycle     `json:"payment_cycle"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SubscriptionInput — данные для создания или полной замены подписки в хранилище.
type SubscriptionInput struct {
	ServiceName  string
	Amount       decimal.Decimal
	Currency     Currency
	StartDate    time.Time
	EndDate      *time.Time
	PaymentCycle PaymentCycle
	ExchangeRate *decimal.Decimal
}

// SubscriptionRequest используется для приёма данных из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся в сервисе.
type SubscriptionRequest struct {
	ServiceName  string  `json:"service_name" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"required,oneof=JPY USD"`
	StartDate    string  `json:"start_date" validate:"required"`
	EndDate      string  `json:"end_date,omitempty" validate:"omitempty"`
	PaymentCycle string  `json:"payment_cycle" validate:"required,oneof=MONTHLY YEARLY"`
}
