// Package subscription содержит бизнес-логику управления подписками:
// CRUD с кешированием, фиксацию курса для подписок в USD и построение отчётов.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/report"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/exchangerate"
)

// CacheTTL время жизни подписки в кеше.
const CacheTTL = time.Hour

// ErrInvalidInput возвращается, когда запрос синтаксически корректен, но не имеет смысла.
var ErrInvalidInput = errors.New("invalid input")

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку.
	CreateSubscription(ctx context.Context, in models.SubscriptionInput) (*models.Subscription, error)
	// ListSubscriptions возвращает все подписки, новые первыми.
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	// GetSubscription возвращает подписку по ID.
	GetSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	// UpdateSubscription полностью заменяет данные подписки.
	UpdateSubscription(ctx context.Context, id uuid.UUID, in models.SubscriptionInput) (*models.Subscription, error)
	// DeleteSubscription удаляет подписку по ID.
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// RateProvider выдаёт средний курс USD→JPY на дату.
type RateProvider interface {
	GetAverageRate(ctx context.Context, asOf time.Time, windowDays int) exchangerate.Result
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	rates RateProvider
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, rates RateProvider, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		rates: rates,
		log:   log,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("subscription:%s", id)
}

// Create сохраняет новую подписку и кладёт её в кеш.
func (s *SubscriptionService) Create(ctx context.Context, req models.SubscriptionRequest) (*models.Subscription, error) {
	const op = "subscription.Create"
	in, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.CreateSubscription(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new subscription", slog.String("id", sub.ID.String()))

	s.cacheSubscription(ctx, sub)
	return sub, nil
}

// Read возвращает подписку по ID, используя кеш или репозиторий.
func (s *SubscriptionService) Read(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	const op = "subscription.Read"
	key := cacheKey(id)

	var cached models.Subscription
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheSubscription(ctx, sub)
	return sub, nil
}

// Update полностью заменяет подписку и обновляет кеш.
// Курс для USD фиксируется заново по новой дате начала.
func (s *SubscriptionService) Update(ctx context.Context, id uuid.UUID, req models.SubscriptionRequest) (*models.Subscription, error) {
	const op = "subscription.Update"
	in, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.UpdateSubscription(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated subscription", slog.String("id", id.String()))

	s.cacheSubscription(ctx, sub)
	return sub, nil
}

// Remove удаляет подписку по ID и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id uuid.UUID) error {
	const op = "subscription.Remove"
	key := cacheKey(id)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}

	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed subscription", slog.String("id", id.String()))
	return nil
}

// List возвращает все подписки.
func (s *SubscriptionService) List(ctx context.Context) ([]models.Subscription, error) {
	const op = "subscription.List"
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	return subs, nil
}

// MonthlySummaries строит помесячные сводки за окно [start, end].
func (s *SubscriptionService) MonthlySummaries(ctx context.Context, start, end time.Time) ([]models.MonthlySummary, error) {
	const op = "subscription.MonthlySummaries"
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report.Aggregate(subs, start, end), nil
}

// Dashboard считает статистику для главной страницы на момент now.
func (s *SubscriptionService) Dashboard(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	const op = "subscription.Dashboard"
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return report.ComputeStats(subs, now), nil
}

// ListRenewals возвращает подписки, заканчивающиеся в ближайшие 30 дней.
func (s *SubscriptionService) ListRenewals(ctx context.Context, now time.Time) ([]models.Subscription, error) {
	stats, err := s.Dashboard(ctx, now)
	if err != nil {
		return nil, err
	}
	return stats.UpcomingRenewals, nil
}

// buildInput возвращает ошибки без префикса op: их текст отдаётся клиенту.
func (s *SubscriptionService) buildInput(ctx context.Context, req models.SubscriptionRequest) (models.SubscriptionInput, error) {
	startDate, err := month.ParseDate(req.StartDate)
	if err != nil {
		return models.SubscriptionInput{}, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}

	var endDate *time.Time
	if req.EndDate != "" {
		d, err := month.ParseDate(req.EndDate)
		if err != nil {
			return models.SubscriptionInput{}, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
		}
		if d.Before(startDate) {
			return models.SubscriptionInput{}, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
		}
		endDate = &d
	}

	if req.Amount <= 0 {
		return models.SubscriptionInput{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	amount := decimal.NewFromFloat(req.Amount)
	if !amount.Equal(amount.Round(2)) {
		return models.SubscriptionInput{}, fmt.Errorf("%w: amount must have at most 2 decimal places", ErrInvalidInput)
	}

	cur := models.Currency(req.Currency)
	if cur != models.JPY && cur != models.USD {
		return models.SubscriptionInput{}, fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, req.Currency)
	}
	cycle := models.PaymentCycle(req.PaymentCycle)
	if cycle != models.Monthly && cycle != models.Yearly {
		return models.SubscriptionInput{}, fmt.Errorf("%w: unsupported payment_cycle %q", ErrInvalidInput, req.PaymentCycle)
	}

	in := models.SubscriptionInput{
		ServiceName:  req.ServiceName,
		Amount:       amount,
		Currency:     cur,
		StartDate:    startDate,
		EndDate:      endDate,
		PaymentCycle: cycle,
	}

	if cur == models.USD {
		res := s.rates.GetAverageRate(ctx, startDate, exchangerate.DefaultWindowDays)
		if res.IsFallback() {
			s.log.Warn("no exchange rate available, freezing fallback rate",
				slog.String("service_name", req.ServiceName),
				slog.String("rate", res.Rate.String()))
		}
		rate := res.Rate
		in.ExchangeRate = &rate
	}
	return in, nil
}

func (s *SubscriptionService) cacheSubscription(ctx context.Context, sub *models.Subscription) {
	key := cacheKey(sub.ID)
	if err := s.cache.Set(ctx, key, sub, CacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
	}
}
