// Package currency пересчитывает суммы в валюту отчётности (JPY).
package currency

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// FallbackRate — курс USD→JPY, который используется, когда другого курса нет.
var FallbackRate = decimal.NewFromInt(150)

// Convert переводит amount из валюты currency в JPY.
//
// Суммы в JPY возвращаются без изменений и без округления.
// Для остальных валют результат округляется до целой иены;
// если курс не задан или не положителен, используется FallbackRate.
func Convert(amount decimal.Decimal, currency models.Currency, rate *decimal.Decimal) decimal.Decimal {
	if currency == models.JPY {
		return amount
	}
	r := FallbackRate
	if rate != nil && rate.IsPositive() {
		r = *rate
	}
	return amount.Mul(r).Round(0)
}
