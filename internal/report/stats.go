package report

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// RenewalHorizonDays: сколько дней вперёд смотрим в поисках истекающих подписок.
const RenewalHorizonDays = 30

// ComputeStats считает сводку на момент now.
//
// В отличие от Aggregate, суммы в USD умножаются на сохранённый курс напрямую:
// если курса нет, в итог попадает исходная сумма без пересчёта.
func ComputeStats(subs []models.Subscription, now time.Time) models.DashboardStats {
	today := month.Date(now)

	stats := models.DashboardStats{UpcomingRenewals: []models.Subscription{}}
	total := decimal.Zero
	for _, s := range subs {
		if !activeBetween(s, today, today) {
			continue
		}
		stats.TotalActiveSubscriptions++

		payment := chargeFor(s, now)
		if s.Currency == models.USD && s.ExchangeRate != nil {
			payment = payment.Mul(*s.ExchangeRate)
		}
		total = total.Add(payment)

		if s.EndDate == nil {
			continue
		}
		if days := DaysUntil(*s.EndDate, now); days > 0 && days <= RenewalHorizonDays {
			stats.UpcomingRenewals = append(stats.UpcomingRenewals, s)
		}
	}
	stats.CurrentMonthTotal = total.Round(0).IntPart()
	return stats
}

// DaysUntil возвращает число суток до date, округлённое вверх.
func DaysUntil(date, now time.Time) int {
	return int(math.Ceil(date.Sub(now).Hours() / 24))
}
