// Package monthly реализует HTTP-обработчик помесячной сводки расходов в JPY.
//
// Период задаётся либо парой startMonth/endMonth (YYYY-MM), либо числом последних
// месяцев months (по умолчанию 12).
package monthly

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/report"
)

// Handler обрабатывает запросы помесячной сводки.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// Service описывает интерфейс построения сводки за окно.
type Service interface {
	MonthlySummaries(ctx context.Context, start, end time.Time) ([]models.MonthlySummary, error)
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
// @Summary Помесячная сводка
// @Description Суммы списаний по месяцам в JPY. Годовые подписки учитываются только в месяц начала.
// @Tags Reports
// @Produce  json
// @Param startMonth query string false "Первый месяц окна, YYYY-MM"
// @Param endMonth query string false "Последний месяц окна, YYYY-MM"
// @Param months query int false "Число последних месяцев, по умолчанию 12"
// @Success 200 {object} response.Response{data=[]models.MonthlySummary} "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/monthly-summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.monthly"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	months := 0
	if raw := q.Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("failed to parse months", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("months must be an integer"))
			return
		}
		months = n
	}

	start, end, err := report.ResolveWindow(q.Get("startMonth"), q.Get("endMonth"), months, h.now())
	if err != nil {
		log.Warn("invalid report window", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid report window"))
		return
	}

	summaries, err := h.service.MonthlySummaries(r.Context(), start, end)
	if err != nil {
		log.Error("failed to build monthly summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build monthly summary"))
		return
	}

	log.Info("monthly summary built", slog.Int("months", len(summaries)))
	render.JSON(w, r, response.StatusOKWithData(summaries))
}
