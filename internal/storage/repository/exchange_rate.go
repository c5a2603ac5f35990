package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// UpsertRate сохраняет курс на дату. Если запись на эту дату уже есть, курс перезаписывается.
func (s *Storage) UpsertRate(ctx context.Context, date time.Time, usdToJpy decimal.Decimal) (*models.ExchangeRate, error) {
	const op = "storage.UpsertRate"

	query := `INSERT INTO exchange_rates (date, usd_to_jpy)
			  VALUES ($1, $2)
			  ON CONFLICT (date) DO UPDATE SET usd_to_jpy = EXCLUDED.usd_to_jpy
			  RETURNING id, date, usd_to_jpy, created_at`
	rate, err := scanRate(s.DB.QueryRowContext(ctx, query, date, usdToJpy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rate, nil
}

// FindLatestRate возвращает самый свежий образец курса или nil, если таблица пуста.
func (s *Storage) FindLatestRate(ctx context.Context) (*models.ExchangeRate, error) {
	const op = "storage.FindLatestRate"

	query := `SELECT id, date, usd_to_jpy, created_at
			  FROM exchange_rates
			  ORDER BY date DESC
			  LIMIT 1`
	rate, err := scanRate(s.DB.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rate, nil
}

// FindRatesInRange возвращает образцы с датой в [start, end] включительно, новые первыми.
func (s *Storage) FindRatesInRange(ctx context.Context, start, end time.Time) ([]models.ExchangeRate, error) {
	const op = "storage.FindRatesInRange"

	query := `SELECT id, date, usd_to_jpy, created_at
			  FROM exchange_rates
			  WHERE date >= $1 AND date <= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := []models.ExchangeRate{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanRate(row rowScanner) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	if err := row.Scan(&rate.ID, &rate.Date, &rate.UsdToJpy, &rate.CreatedAt); err != nil {
		return nil, err
	}
	rate.Date = rate.Date.UTC()
	return &rate, nil
}
