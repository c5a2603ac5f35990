package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate — дневной образец курса USD→JPY. На одну дату хранится не более одной записи.
type ExchangeRate struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	UsdToJpy  decimal.Decimal `json:"usd_to_jpy"`
	CreatedAt time.Time       `json:"created_at"`
}
