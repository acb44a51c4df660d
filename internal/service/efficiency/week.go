package efficiency

import (
	"fmt"
	"time"
)

func liveSummaryName(prefix string, week int) string {
	return fmt.Sprintf("%s_Week%d", prefix, week)
}

func archivedSummaryName(prefix string, week, year int) string {
	return fmt.Sprintf("%s_%d/%d_saved", prefix, week, year)
}

// isoWeekday — понедельник 1 ... воскресенье 7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// creationWeek — неделя, под которую создаётся живой свод. После момента
// перехода (по умолчанию пятница 17:30) новый свод заводится уже на
// следующую неделю. Сдвиг через AddDate, чтобы 53-я неделя не ломала счёт.
func creationWeek(now time.Time, cutoffWeekday, cutoffMinutes int) (week, year int) {
	minutes := now.Hour()*60 + now.Minute()

	if isoWeekday(now) > cutoffWeekday ||
		(isoWeekday(now) == cutoffWeekday && minutes >= cutoffMinutes) {
		now = now.AddDate(0, 0, 7)
	}

	year, week = now.ISOWeek()
	return week, year
}

// currentWeek — календарная ISO-неделя без учёта перехода; по ней живут
// пересчёт и архивирование уже существующего свода.
func currentWeek(now time.Time) (week, year int) {
	year, week = now.ISOWeek()
	return week, year
}
