package update

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id uuid.UUID, req models.SubscriptionRequest) (*models.Subscription, error) {
	args := m.Called(ctx, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	id := uuid.New()
	body := `{"service_name":"Spotify","amount":980,"currency":"JPY","start_date":"2024-02-01","end_date":"2025-02-01","payment_cycle":"MONTHLY"}`
	req := models.SubscriptionRequest{
		ServiceName: "Spotify", Amount: 980, Currency: "JPY",
		StartDate: "2024-02-01", EndDate: "2025-02-01", PaymentCycle: "MONTHLY",
	}

	tests := []struct {
		name           string
		urlID          string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное обновление",
			urlID: id.String(),
			body:  body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, id, req).Return(&models.Subscription{ID: id, ServiceName: "Spotify"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"service_name":"Spotify"`,
		},
		{
			name:           "некорректный id",
			urlID:          "42",
			body:           body,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid subscription id"`,
		},
		{
			name:           "некорректный JSON",
			urlID:          id.String(),
			body:           `not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "ошибка валидации",
			urlID:          id.String(),
			body:           `{"service_name":"Spotify","amount":980,"currency":"JPY","start_date":"2024-02-01","payment_cycle":"WEEKLY"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field PaymentCycle must be one of [MONTHLY YEARLY]",
		},
		{
			name:  "некорректные даты",
			urlID: id.String(),
			body:  body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, id, req).
					Return(nil, fmt.Errorf("%w: start_date: bad", subscription.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid input",
		},
		{
			name:  "подписка не найдена",
			urlID: id.String(),
			body:  body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, id, req).Return(nil, storage.ErrSubscriptionNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subscription not found"`,
		},
		{
			name:  "ошибка сервиса",
			urlID: id.String(),
			body:  body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, id, req).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not update subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			r := httptest.NewRequest(http.MethodPut, "/subscriptions/"+tt.urlID, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(sl.Discard(), mockService).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
