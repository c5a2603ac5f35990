package exchangerate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/ratesource"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertRate(ctx context.Context, date time.Time, usdToJpy decimal.Decimal) (*models.ExchangeRate, error) {
	args := m.Called(ctx, date, usdToJpy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *RepoMock) FindLatestRate(ctx context.Context) (*models.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *RepoMock) FindRatesInRange(ctx context.Context, start, end time.Time) ([]models.ExchangeRate, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

type SourceMock struct{ mock.Mock }

func (m *SourceMock) FetchUSDJPY(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sample(date time.Time, rate string) models.ExchangeRate {
	return models.ExchangeRate{Date: date, UsdToJpy: dec(rate)}
}

func newTestService(r *RepoMock, s *SourceMock) *Service {
	return NewService(r, s, sl.Discard(), WithClock(func() time.Time { return now }))
}

func TestService_GetCurrentRate(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fresh := sample(today, "148.5")
	stale := sample(today.AddDate(0, 0, -2), "140")

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, s *SourceMock)
		wantRate   string
		wantSource Source
	}{
		{
			name: "fresh sample is served without network call",
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(&fresh, nil).Once()
			},
			wantRate:   "148.5",
			wantSource: SourceCache,
		},
		{
			name: "stale sample triggers fetch and upsert",
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(&stale, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).Return(dec("151.2"), nil).Once()
				r.On("UpsertRate", mock.Anything, today, dec("151.2")).
					Return(&models.ExchangeRate{Date: today, UsdToJpy: dec("151.2")}, nil).Once()
			},
			wantRate:   "151.2",
			wantSource: SourceLive,
		},
		{
			name: "empty store triggers fetch",
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(nil, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).Return(dec("149"), nil).Once()
				r.On("UpsertRate", mock.Anything, today, dec("149")).
					Return(&models.ExchangeRate{Date: today, UsdToJpy: dec("149")}, nil).Once()
			},
			wantRate:   "149",
			wantSource: SourceLive,
		},
		{
			name: "fetch failure falls back without persisting",
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(&stale, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).
					Return(decimal.Zero, ratesource.ErrRateUnavailable).Once()
			},
			wantRate:   "150",
			wantSource: SourceFallback,
		},
		{
			name: "store read failure falls back",
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantRate:   "150",
			wantSource: SourceFallback,
		},
		{
			name: "store write failure still returns fetched rate",
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindLatestRate", mock.Anything).Return(nil, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).Return(dec("152"), nil).Once()
				r.On("UpsertRate", mock.Anything, today, dec("152")).
					Return(nil, errors.New("db down")).Once()
			},
			wantRate:   "152",
			wantSource: SourceLive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := new(RepoMock), new(SourceMock)
			tt.setupMocks(r, s)

			got := newTestService(r, s).GetCurrentRate(context.Background())

			assert.True(t, dec(tt.wantRate).Equal(got.Rate), "want %s, got %s", tt.wantRate, got.Rate)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantSource == SourceFallback, got.IsFallback())
			r.AssertExpectations(t)
			s.AssertExpectations(t)
			if tt.wantSource == SourceCache || tt.wantSource == SourceFallback {
				r.AssertNotCalled(t, "UpsertRate", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_GetAverageRate(t *testing.T) {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	windowStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		windowDays int
		setupMocks func(r *RepoMock, s *SourceMock)
		wantRate   string
		wantSource Source
	}{
		{
			name:       "mean of samples",
			windowDays: 30,
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, windowStart, asOf).Return([]models.ExchangeRate{
					sample(asOf, "152"), sample(asOf.AddDate(0, 0, -1), "150"), sample(asOf.AddDate(0, 0, -2), "148"),
				}, nil).Once()
			},
			wantRate:   "150",
			wantSource: SourceAverage,
		},
		{
			name:       "mean rounded to two places",
			windowDays: 0,
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, windowStart, asOf).Return([]models.ExchangeRate{
					sample(asOf, "150.1"), sample(asOf, "150.2"), sample(asOf, "150.2"),
				}, nil).Once()
			},
			wantRate:   "150.17",
			wantSource: SourceAverage,
		},
		{
			name:       "no samples delegates to current rate",
			windowDays: 30,
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, windowStart, asOf).Return([]models.ExchangeRate{}, nil).Once()
				r.On("FindLatestRate", mock.Anything).Return(nil, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).Return(dec("155.5"), nil).Once()
				r.On("UpsertRate", mock.Anything, mock.Anything, dec("155.5")).
					Return(&models.ExchangeRate{}, nil).Once()
			},
			wantRate:   "155.5",
			wantSource: SourceLive,
		},
		{
			name:       "no samples and failing source falls back",
			windowDays: 30,
			setupMocks: func(r *RepoMock, s *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, windowStart, asOf).Return([]models.ExchangeRate{}, nil).Once()
				r.On("FindLatestRate", mock.Anything).Return(nil, nil).Once()
				s.On("FetchUSDJPY", mock.Anything).Return(decimal.Zero, errors.New("timeout")).Once()
			},
			wantRate:   "150",
			wantSource: SourceFallback,
		},
		{
			name:       "store failure falls back",
			windowDays: 30,
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, windowStart, asOf).Return(nil, errors.New("db down")).Once()
			},
			wantRate:   "150",
			wantSource: SourceFallback,
		},
		{
			name:       "custom window",
			windowDays: 7,
			setupMocks: func(r *RepoMock, _ *SourceMock) {
				r.On("FindRatesInRange", mock.Anything, asOf.AddDate(0, 0, -7), asOf).
					Return([]models.ExchangeRate{sample(asOf, "149.99")}, nil).Once()
			},
			wantRate:   "149.99",
			wantSource: SourceAverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := new(RepoMock), new(SourceMock)
			tt.setupMocks(r, s)

			got := newTestService(r, s).GetAverageRate(context.Background(), asOf, tt.windowDays)

			assert.True(t, dec(tt.wantRate).Equal(got.Rate), "want %s, got %s", tt.wantRate, got.Rate)
			assert.Equal(t, tt.wantSource, got.Source)
			r.AssertExpectations(t)
			s.AssertExpectations(t)
		})
	}
}

func TestService_GetAverageRate_StripsTimeOfDay(t *testing.T) {
	r, s := new(RepoMock), new(SourceMock)
	asOf := time.Date(2025, 3, 31, 17, 45, 0, 0, time.UTC)
	day := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	r.On("FindRatesInRange", mock.Anything, day.AddDate(0, 0, -30), day).
		Return([]models.ExchangeRate{sample(day, "150")}, nil).Once()

	got := newTestService(r, s).GetAverageRate(context.Background(), asOf, 30)

	assert.Equal(t, SourceAverage, got.Source)
	r.AssertExpectations(t)
}

// blockingSource держит запрос, пока не закрыт release или не отменён контекст запроса.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingSource) FetchUSDJPY(ctx context.Context) (decimal.Decimal, error) {
	b.calls.Add(1)
	select {
	case b.started <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
		return dec("151"), nil
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	}
}

func TestService_GetCurrentRate_SharedFetchSurvivesCancelledCaller(t *testing.T) {
	repo := new(RepoMock)
	repo.On("FindLatestRate", mock.Anything).Return(nil, nil)
	repo.On("UpsertRate", mock.Anything, mock.Anything, dec("151")).
		Return(&models.ExchangeRate{UsdToJpy: dec("151")}, nil)

	src := &blockingSource{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := NewService(repo, src, sl.Discard(), WithClock(func() time.Time { return now }))

	ctxA, cancelA := context.WithCancel(context.Background())
	resA := make(chan Result, 1)
	go func() { resA <- svc.GetCurrentRate(ctxA) }()

	select {
	case <-src.started:
	case <-time.After(time.Second):
		t.Fatal("rate source was not called")
	}

	resB := make(chan Result, 1)
	go func() { resB <- svc.GetCurrentRate(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case a := <-resA:
		assert.Equal(t, SourceFallback, a.Source)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(src.release)
	select {
	case b := <-resB:
		assert.Equal(t, SourceLive, b.Source)
		assert.True(t, dec("151").Equal(b.Rate), "got %s", b.Rate)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}

	assert.Equal(t, int32(1), src.calls.Load())
	repo.AssertCalled(t, "UpsertRate", mock.Anything, mock.Anything, dec("151"))
}
