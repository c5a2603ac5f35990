// Package current реализует HTTP-обработчик текущего курса USD→JPY.
package current

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/exchangerate"
)

// Handler отдаёт текущий курс и его происхождение.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение текущего курса.
type Service interface {
	GetCurrentRate(ctx context.Context) exchangerate.Result
}

// Rate описывает тело ответа.
type Rate struct {
	UsdToJpy decimal.Decimal     `json:"usd_to_jpy"`
	Source   exchangerate.Source `json:"source"`
	Fallback bool                `json:"fallback"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий курс USD→JPY
// @Description Курс из хранилища, если он моложе суток, иначе из внешнего источника. При недоступности источника возвращается резервный курс 150 с fallback=true.
// @Tags ExchangeRates
// @Produce  json
// @Success 200 {object} response.Response{data=Rate} "Курс"
// @Router /exchange-rates/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exchangerate.current"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res := h.service.GetCurrentRate(r.Context())
	if res.IsFallback() {
		log.Warn("serving fallback exchange rate")
	}

	render.JSON(w, r, response.StatusOKWithData(Rate{
		UsdToJpy: res.Rate,
		Source:   res.Source,
		Fallback: res.IsFallback(),
	}))
}
