// Package report вычисляет помесячные итоги и сводку для дашборда.
//
// Все функции пакета чистые: не выполняют ввод-вывод и не изменяют входные данные,
// поэтому их можно вызывать конкурентно.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/currency"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Aggregate строит по одному MonthlySummary на каждый месяц окна [windowStart, windowEnd]
// в хронологическом порядке. Границы окна расширяются до целых месяцев.
//
// Суммы в USD пересчитываются по курсу, сохранённому в подписке; курс заново не запрашивается.
func Aggregate(subs []models.Subscription, windowStart, windowEnd time.Time) []models.MonthlySummary {
	first := month.Start(windowStart)
	last := month.Start(windowEnd)

	summaries := make([]models.MonthlySummary, 0, month.Count(first, last))
	for m := first; !m.After(last); m = month.Add(m, 1) {
		summaries = append(summaries, summarizeMonth(subs, m))
	}
	return summaries
}

func summarizeMonth(subs []models.Subscription, m time.Time) models.MonthlySummary {
	monthStart, monthEnd := month.Start(m), month.End(m)

	total := decimal.Zero
	items := []models.SummaryItem{}
	for _, s := range subs {
		if !activeBetween(s, monthStart, monthEnd) {
			continue
		}
		charge := chargeFor(s, m)
		if !charge.IsPositive() {
			continue
		}
		inJpy := currency.Convert(charge, s.Currency, s.ExchangeRate)
		total = total.Add(inJpy)
		items = append(items, models.SummaryItem{
			ServiceName: s.ServiceName,
			Amount:      charge,
			Currency:    s.Currency,
			AmountInJpy: inJpy,
		})
	}

	return models.MonthlySummary{
		Month:         month.Format(m),
		TotalAmount:   total.Round(0).IntPart(),
		Subscriptions: items,
	}
}

// activeBetween сообщает, пересекается ли подписка с отрезком [from, to] (даты включительно).
func activeBetween(s models.Subscription, from, to time.Time) bool {
	if month.Date(s.StartDate).After(to) {
		return false
	}
	return s.EndDate == nil || !month.Date(*s.EndDate).Before(from)
}

// chargeFor возвращает сумму списания в месяце m в валюте подписки.
// Годовая подписка списывается только в месяц начала, начиная с года начала.
func chargeFor(s models.Subscription, m time.Time) decimal.Decimal {
	if s.PaymentCycle != models.Yearly {
		return s.Amount
	}
	if m.Month() == s.StartDate.Month() && m.Year() >= s.StartDate.Year() {
		return s.Amount
	}
	return decimal.Zero
}
