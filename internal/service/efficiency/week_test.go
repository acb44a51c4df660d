package efficiency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Переход — пятница 17:30 (ISO-день 5, 1050 минут)
const (
	cutoffDay = 5
	cutoffMin = 17*60 + 30
)

func TestCreationWeek_BeforeCutoff(t *testing.T) {
	// Пятница 17:29
	now := time.Date(2025, 3, 14, 17, 29, 0, 0, time.UTC)

	week, year := creationWeek(now, cutoffDay, cutoffMin)

	assert.Equal(t, 11, week)
	assert.Equal(t, 2025, year)
}

func TestCreationWeek_AtCutoff(t *testing.T) {
	// Пятница ровно 17:30 — уже следующая неделя
	now := time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

	week, year := creationWeek(now, cutoffDay, cutoffMin)

	assert.Equal(t, 12, week)
	assert.Equal(t, 2025, year)
}

func TestCreationWeek_Weekend(t *testing.T) {
	// Воскресенье — после перехода
	now := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)

	week, _ := creationWeek(now, cutoffDay, cutoffMin)

	assert.Equal(t, 12, week)
}

func TestCreationWeek_YearRollover(t *testing.T) {
	// Суббота последней недели 2027 (53-я ISO-неделя): сдвиг должен дать
	// неделю 1 следующего года, а не 54
	now := time.Date(2027, 1, 2, 12, 0, 0, 0, time.UTC)

	week, year := creationWeek(now, cutoffDay, cutoffMin)

	assert.Equal(t, 1, week)
	assert.Equal(t, 2027, year)
}

func TestCurrentWeek(t *testing.T) {
	// Переход не влияет на текущую неделю
	now := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)

	week, year := currentWeek(now)

	assert.Equal(t, 11, week)
	assert.Equal(t, 2025, year)
}

func TestSummaryNames(t *testing.T) {
	assert.Equal(t, "KokkolaEfficiency_Week11", liveSummaryName("KokkolaEfficiency", 11))
	assert.Equal(t, "KokkolaEfficiency_11/2025_saved", archivedSummaryName("KokkolaEfficiency", 11, 2025))
}
