// Package exchangerate выдаёт курс USD→JPY: из недавнего образца в хранилище,
// как среднее за период или из внешнего источника.
//
// Методы сервиса никогда не возвращают ошибку: при любой проблеме используется
// резервный курс, а источник курса явно указывается в Result.
package exchangerate

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/magabrotheeeer/subscription-tracker/internal/currency"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const (
	// CacheTTL задаёт возраст образца, при котором он ещё считается текущим курсом.
	CacheTTL = 24 * time.Hour
	// DefaultWindowDays задаёт период усреднения по умолчанию.
	DefaultWindowDays = 30
)

// RateRepository описывает хранилище дневных образцов курса.
type RateRepository interface {
	// UpsertRate сохраняет курс на дату, перезаписывая существующий.
	UpsertRate(ctx context.Context, date time.Time, usdToJpy decimal.Decimal) (*models.ExchangeRate, error)
	// FindLatestRate возвращает самый свежий образец или nil.
	FindLatestRate(ctx context.Context) (*models.ExchangeRate, error)
	// FindRatesInRange возвращает образцы с датой в [start, end].
	FindRatesInRange(ctx context.Context, start, end time.Time) ([]models.ExchangeRate, error)
}

// RateSource отдаёт текущий курс из внешнего источника.
type RateSource interface {
	FetchUSDJPY(ctx context.Context) (decimal.Decimal, error)
}

// Source указывает, откуда взят курс.
type Source string

const (
	SourceCache    Source = "cache"
	SourceLive     Source = "live"
	SourceAverage  Source = "average"
	SourceFallback Source = "fallback"
)

// Result содержит курс и его происхождение. Результат всегда пригоден к использованию.
type Result struct {
	Rate   decimal.Decimal
	Source Source
}

// IsFallback сообщает, что вместо реального курса подставлен резервный.
func (r Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// Service реализует получение курса с кешированием в хранилище и резервным значением.
type Service struct {
	repo   RateRepository
	source RateSource
	log    *slog.Logger
	now    func() time.Time
	group  singleflight.Group
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создаёт новый экземпляр Service.
func NewService(repo RateRepository, source RateSource, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		source: source,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCurrentRate возвращает образец из хранилища, если он моложе CacheTTL,
// иначе один раз запрашивает внешний источник и сохраняет полученный курс.
// Одновременные запросы к источнику объединяются.
func (s *Service) GetCurrentRate(ctx context.Context) Result {
	const op = "exchangerate.GetCurrentRate"
	log := s.log.With(slog.String("op", op))

	latest, err := s.repo.FindLatestRate(ctx)
	if err != nil {
		log.Error("failed to read latest exchange rate", sl.Err(err))
		return s.result(log, currency.FallbackRate, SourceFallback)
	}

	now := s.now()
	if latest != nil && latest.Date.After(now.Add(-CacheTTL)) {
		return s.result(log, latest.UsdToJpy, SourceCache)
	}

	// Запрос к источнику общий для всех ожидающих: отмена одного вызывающего его не прерывает.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("USDJPY", func() (any, error) {
		return s.fetchAndStore(fetchCtx, log, now), nil
	})

	select {
	case res := <-ch:
		return res.Val.(Result)
	case <-ctx.Done():
		log.Warn("request cancelled while waiting for exchange rate, using fallback", sl.Err(ctx.Err()))
		return s.result(log, currency.FallbackRate, SourceFallback)
	}
}

func (s *Service) fetchAndStore(ctx context.Context, log *slog.Logger, now time.Time) Result {
	rate, err := s.source.FetchUSDJPY(ctx)
	if err != nil {
		log.Error("failed to fetch exchange rate, using fallback", sl.Err(err))
		return s.result(log, currency.FallbackRate, SourceFallback)
	}

	if _, err := s.repo.UpsertRate(ctx, month.Date(now), rate); err != nil {
		log.Warn("failed to store fetched exchange rate", sl.Err(err))
	}
	return s.result(log, rate, SourceLive)
}

// GetAverageRate возвращает среднее арифметическое образцов за [asOf-windowDays, asOf],
// округлённое до двух знаков. Если образцов нет, возвращает GetCurrentRate.
// windowDays <= 0 заменяется на DefaultWindowDays.
func (s *Service) GetAverageRate(ctx context.Context, asOf time.Time, windowDays int) Result {
	const op = "exchangerate.GetAverageRate"
	log := s.log.With(slog.String("op", op))

	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	end := month.Date(asOf)
	start := end.AddDate(0, 0, -windowDays)

	rates, err := s.repo.FindRatesInRange(ctx, start, end)
	if err != nil {
		log.Error("failed to read exchange rate history", sl.Err(err))
		return s.result(log, currency.FallbackRate, SourceFallback)
	}
	if len(rates) == 0 {
		log.Debug("no exchange rate history in window, using current rate",
			slog.Time("from", start), slog.Time("to", end))
		return s.GetCurrentRate(ctx)
	}

	sum := decimal.Zero
	for _, r := range rates {
		sum = sum.Add(r.UsdToJpy)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(rates)))).Round(2)
	return s.result(log, avg, SourceAverage)
}

func (s *Service) result(log *slog.Logger, rate decimal.Decimal, source Source) Result {
	metrics.RateLookups.WithLabelValues(string(source)).Inc()
	log.Debug("exchange rate resolved", slog.String("rate", rate.String()), slog.String("source", string(source)))
	return Result{Rate: rate, Source: source}
}
