// Package dashboard реализует HTTP-обработчик статистики для главной страницы.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы статистики.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// Service описывает интерфейс расчёта статистики на момент now.
type Service interface {
	Dashboard(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Статистика
// @Description Число активных подписок, сумма списаний текущего месяца в JPY и подписки, заканчивающиеся в ближайшие 30 дней.
// @Tags Reports
// @Produce  json
// @Success 200 {object} response.Response{data=models.DashboardStats} "Статистика"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Dashboard(r.Context(), h.now())
	if err != nil {
		log.Error("failed to compute dashboard stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute dashboard stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(stats))
}
