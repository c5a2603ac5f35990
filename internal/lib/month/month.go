// Package month содержит помощники для работы с календарными месяцами и датами без времени.
package month

import (
	"fmt"
	"time"
)

// Layout — формат месяца в запросах и отчётах.
const Layout = "2006-01"

// DateLayout — формат календарной даты.
const DateLayout = "2006-01-02"

// Date отбрасывает время суток, сохраняя календарную дату в UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Start возвращает первый день месяца, в который попадает t.
func Start(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// End возвращает последний день месяца, в который попадает t.
func End(t time.Time) time.Time {
	return Start(t).AddDate(0, 1, -1)
}

// Add сдвигает t на n месяцев и возвращает первый день получившегося месяца.
// В отличие от time.AddDate не «перескакивает» через короткие месяцы.
func Add(t time.Time, n int) time.Time {
	return Start(t).AddDate(0, n, 0)
}

// Count возвращает число календарных месяцев от from до to включительно.
// Если to раньше from, возвращает 0.
func Count(from, to time.Time) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Format возвращает месяц в формате YYYY-MM.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse разбирает строку YYYY-MM и возвращает первый день месяца.
func Parse(s string) (time.Time, error) {
	const op = "month.Parse"
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ParseDate разбирает строку YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	const op = "month.ParseDate"
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
