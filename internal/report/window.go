package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
)

// DefaultMonths задаёт длину окна, если период не указан явно.
const DefaultMonths = 12

// ErrInvalidWindow возвращается при некорректных параметрах периода отчёта.
var ErrInvalidWindow = errors.New("invalid report window")

// ResolveWindow определяет окно отчёта.
//
// Если заданы оба месяца (YYYY-MM), используются они. Иначе берутся months последних
// месяцев, включая текущий; months == 0 означает DefaultMonths.
func ResolveWindow(startMonth, endMonth string, months int, now time.Time) (time.Time, time.Time, error) {
	const op = "report.ResolveWindow"

	if startMonth != "" && endMonth != "" {
		start, err := month.Parse(startMonth)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidWindow, err)
		}
		end, err := month.Parse(endMonth)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidWindow, err)
		}
		return start, end, nil
	}

	if months < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w: months must be positive", op, ErrInvalidWindow)
	}
	if months == 0 {
		months = DefaultMonths
	}
	return month.Add(now, -(months - 1)), month.Date(now), nil
}
