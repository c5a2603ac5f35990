package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Dashboard(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.DashboardStats), args.Error(1)
}

func TestDashboardHandler(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "статистика",
			setupMock: func(m *MockService) {
				m.On("Dashboard", mock.Anything, now).Return(models.DashboardStats{
					TotalActiveSubscriptions: 8,
					CurrentMonthTotal:        19697,
					UpcomingRenewals:         []models.Subscription{},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"total_active_subscriptions":8,"current_month_total":19697,"upcoming_renewals":[]}`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("Dashboard", mock.Anything, now).Return(models.DashboardStats{}, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not compute dashboard stats"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			h := New(sl.Discard(), mockService)
			h.now = func() time.Time { return now }

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
