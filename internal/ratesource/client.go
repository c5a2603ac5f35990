// Package ratesource получает текущий курс USD→JPY из внешнего API.
package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultURL указывает на публичный эндпоинт с курсами относительно USD.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

var (
	// ErrRateUnavailable означает, что внешний источник курса недоступен.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrMalformedResponse означает, что ответ не содержит корректного курса JPY.
	ErrMalformedResponse = errors.New("malformed exchange rate response")
)

// Client делает ровно один запрос на вызов, без повторов.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создаёт клиент. Пустой url заменяется на DefaultURL.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchUSDJPY возвращает текущий курс USD→JPY.
// Любая ошибка оборачивает ErrRateUnavailable.
func (c *Client) FetchUSDJPY(ctx context.Context) (decimal.Decimal, error) {
	const op = "ratesource.FetchUSDJPY"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %w", op, ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %w", op, ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%s: %w: unexpected status: %s", op, ErrRateUnavailable, resp.Status)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %w: %w", op, ErrRateUnavailable, ErrMalformedResponse, err)
	}
	rate, ok := body.Rates["JPY"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s: %w: %w", op, ErrRateUnavailable, ErrMalformedResponse)
	}
	return rate, nil
}
