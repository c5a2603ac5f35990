// Package scheduler запускает фоновые задачи: обновление курса валют
// и рассылку напоминаний о скором окончании подписок.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/report"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/exchangerate"
)

// RenewalLister возвращает подписки, которые скоро заканчиваются.
type RenewalLister interface {
	ListRenewals(ctx context.Context, now time.Time) ([]models.Subscription, error)
}

// RateRefresher обновляет текущий курс.
type RateRefresher interface {
	GetCurrentRate(ctx context.Context) exchangerate.Result
}

// Publisher отправляет сообщение в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// SchedulerService выполняет периодические задачи до отмены контекста.
type SchedulerService struct {
	subs  RenewalLister
	rates RateRefresher
	pub   Publisher
	log   *slog.Logger
	now   func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(subs RenewalLister, rates RateRefresher, pub Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		subs:  subs,
		rates: rates,
		pub:   pub,
		log:   log,
		now:   time.Now,
	}
}

// RefreshRates держит свежим образец курса в хранилище.
func (s *SchedulerService) RefreshRates(ctx context.Context, interval time.Duration) {
	every(ctx, interval, s.runRefreshRate)
}

// CheckRenewals публикует напоминания о подписках, заканчивающихся в ближайшие 30 дней.
func (s *SchedulerService) CheckRenewals(ctx context.Context, interval time.Duration) {
	every(ctx, interval, func(ctx context.Context) {
		s.runCheckRenewals(ctx)
	})
}

func (s *SchedulerService) runRefreshRate(ctx context.Context) {
	res := s.rates.GetCurrentRate(ctx)
	if res.IsFallback() {
		s.log.Warn("exchange rate refresh failed, fallback in use")
		return
	}
	s.log.Info("exchange rate refreshed",
		slog.String("rate", res.Rate.String()),
		slog.String("source", string(res.Source)))
}

// runCheckRenewals возвращает число успешно опубликованных напоминаний.
func (s *SchedulerService) runCheckRenewals(ctx context.Context) int {
	s.log.Info("checking upcoming renewals")
	now := s.now()
	subs, err := s.subs.ListRenewals(ctx, now)
	if err != nil {
		s.log.Error("failed to list upcoming renewals", sl.Err(err))
		return 0
	}
	if len(subs) == 0 {
		s.log.Info("no upcoming renewals found")
		return 0
	}
	s.log.Info("found upcoming renewals", slog.Int("count", len(subs)))

	published := 0
	for _, sub := range subs {
		notice := newRenewalNotice(sub, now)
		if err := s.pub.Publish(ctx, rabbitmq.RoutingKeyRenewalUpcoming, notice); err != nil {
			metrics.RenewalNotices.WithLabelValues("error").Inc()
			s.log.Error("failed to publish renewal notice",
				slog.String("id", sub.ID.String()), sl.Err(err))
			continue
		}
		metrics.RenewalNotices.WithLabelValues("success").Inc()
		published++
	}
	return published
}

func newRenewalNotice(sub models.Subscription, now time.Time) models.RenewalNotice {
	return models.RenewalNotice{
		SubscriptionID: sub.ID,
		ServiceName:    sub.ServiceName,
		EndDate:        *sub.EndDate,
		DaysLeft:       report.DaysUntil(*sub.EndDate, now),
		Amount:         sub.Amount,
		Currency:       sub.Currency,
	}
}

// every вызывает fn сразу и затем каждые interval, пока ctx не отменён.
func every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
