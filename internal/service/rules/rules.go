package rules

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Статусы секции/заказа. Пересчёт идемпотентен и может двигать статус
// назад (Valmis -> Aloitettu при уменьшении счётчика) — это ожидаемое
// поведение, а не ошибка.
const (
	StatusStarted = "Aloitettu"
	StatusDone    = "Valmis"
	StatusOver    = "Yli"
)

var ErrEmptyGroup = errors.New("worker group is empty")

// ResolveStatus выводит статус по выработке против плана.
func ResolveStatus(produced, target float64) string {
	switch {
	case produced == target:
		return StatusDone
	case produced > target:
		return StatusOver
	default:
		return StatusStarted
	}
}

// SplitQuantity делит общее количество на n работников: первые n-1 долей
// округляются до сотых, последняя — остаток, чтобы сумма сходилась точно.
func SplitQuantity(total float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrEmptyGroup
	}

	per := Round2(total / float64(n))

	shares := make([]float64, n)
	for i := 0; i < n-1; i++ {
		shares[i] = per
	}
	shares[n-1] = Round2(total - per*float64(n-1))

	return shares, nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatDuration — пройденное время между start и end, с округлением
// вниз до целых минут, в виде "HH:MM".
func FormatDuration(start, end time.Time) string {
	seconds := int(end.Sub(start).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	minutes := seconds / 60

	return ClockFromMinutes(minutes)
}

// MinutesFromClock разбирает "HH:MM" обратно в минуты; пустая строка — 0.
func MinutesFromClock(clock string) (int, error) {
	if clock == "" {
		return 0, nil
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}

	return hours*60 + minutes, nil
}

func ClockFromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
