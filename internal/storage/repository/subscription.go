package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

const subscriptionColumns = `id, service_name, amount, currency, start_date, end_date,
	payment_cycle, exchange_rate, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateSubscription вставляет новую подписку и возвращает сохранённую запись.
func (s *Storage) CreateSubscription(ctx context.Context, in models.SubscriptionInput) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"

	query := `INSERT INTO subscriptions (service_name, amount, currency, start_date, end_date,
				  payment_cycle, exchange_rate)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		in.ServiceName, in.Amount, string(in.Currency), in.StartDate, nullTime(in.EndDate),
		string(in.PaymentCycle), nullDecimal(in.ExchangeRate))

	sub, err := scanSubscription(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает все подписки, начиная с последних созданных.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := []models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSubscription возвращает подписку по ID или storage.ErrSubscriptionNotFound.
func (s *Storage) GetSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	const op = "storage.GetSubscription"

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpdateSubscription целиком заменяет поля подписки и обновляет updated_at.
func (s *Storage) UpdateSubscription(ctx context.Context, id uuid.UUID, in models.SubscriptionInput) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"

	query := `UPDATE subscriptions
			  SET service_name = $1, amount = $2, currency = $3, start_date = $4, end_date = $5,
			      payment_cycle = $6, exchange_rate = $7, updated_at = NOW()
			  WHERE id = $8
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		in.ServiceName, in.Amount, string(in.Currency), in.StartDate, nullTime(in.EndDate),
		string(in.PaymentCycle), nullDecimal(in.ExchangeRate), id)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// DeleteSubscription удаляет подписку по ID.
func (s *Storage) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteSubscription"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	return nil
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var (
		sub          models.Subscription
		currency     string
		cycle        string
		endDate      sql.NullTime
		exchangeRate decimal.NullDecimal
	)
	if err := row.Scan(&sub.ID, &sub.ServiceName, &sub.Amount, &currency, &sub.StartDate, &endDate,
		&cycle, &exchangeRate, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	sub.Currency = models.Currency(currency)
	sub.PaymentCycle = models.PaymentCycle(cycle)
	sub.StartDate = sub.StartDate.UTC()
	if endDate.Valid {
		end := endDate.Time.UTC()
		sub.EndDate = &end
	}
	if exchangeRate.Valid {
		rate := exchangeRate.Decimal
		sub.ExchangeRate = &rate
	}
	return &sub, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
