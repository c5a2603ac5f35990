// Package subscriptiontracker собирает HTTP-приложение учёта подписок.
package subscriptiontracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документации для /docs.
	_ "github.com/magabrotheeeer/subscription-tracker/docs"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/exchangerate/current"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/report/dashboard"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/report/monthly"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
)

// SubscriptionService объединяет всё, что HTTP-слою нужно от сервиса подписок.
type SubscriptionService interface {
	create.Service
	list.Service
	read.Service
	update.Service
	remove.Service
	monthly.Service
	dashboard.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, subs SubscriptionService, rates current.Service, db health.Pinger) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger, db).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))

			r.Post("/subscriptions", create.New(logger, subs).ServeHTTP)
			r.Get("/subscriptions", list.New(logger, subs).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subs).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subs).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subs).ServeHTTP)

			r.Get("/reports/monthly-summary", monthly.New(logger, subs).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger, subs).ServeHTTP)
			r.Get("/exchange-rates/current", current.New(logger, rates).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
