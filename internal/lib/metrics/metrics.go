// Package metrics объявляет Prometheus-коллекторы сервиса.
// Они регистрируются в реестре по умолчанию и отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "subscription_tracker"

var (
	// RateLookups считает обращения за курсом по источнику результата.
	RateLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchange_rate_lookups_total",
		Help:      "Exchange rate lookups by the source that produced the rate.",
	}, []string{"source"})

	// RenewalNotices считает опубликованные напоминания об окончании подписок.
	RenewalNotices = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renewal_notices_published_total",
		Help:      "Renewal notices published to the message broker.",
	}, []string{"result"})
)
