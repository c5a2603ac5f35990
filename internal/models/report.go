package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlySummary описывает итог за один календарный месяц. Не хранится, вычисляется.
type MonthlySummary struct {
	Month         string        `json:"month"`
	TotalAmount   int64         `json:"total_amount"`
	Subscriptions []SummaryItem `json:"subscriptions"`
}

// SummaryItem описывает списание одной подписки в рамках месяца.
type SummaryItem struct {
	ServiceName string          `json:"service_name"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	AmountInJpy decimal.Decimal `json:"amount_in_jpy"`
}

// DashboardStats — сводка для главной страницы.
type DashboardStats struct {
	TotalActiveSubscriptions int            `json:"total_active_subscriptions"`
	CurrentMonthTotal        int64          `json:"current_month_total"`
	UpcomingRenewals         []Subscription `json:"upcoming_renewals"`
}

// RenewalNotice публикуется планировщиком для подписок, срок которых скоро истекает.
type RenewalNotice struct {
	SubscriptionID uuid.UUID       `json:"subscription_id"`
	ServiceName    string          `json:"service_name"`
	EndDate        time.Time       `json:"end_date"`
	DaysLeft       int             `json:"days_left"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       Currency        `json:"currency"`
}
