package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDayMonth разбирает дату в формате ДД.ММ, год берётся текущий.
// Несуществующие даты (31.02) отклоняются, а не нормализуются.
func ParseDayMonth(input string, now time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(input), ".")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("ожидается формат ДД.ММ, получено %q", input)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный день %q", parts[0])
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный месяц %q", parts[1])
	}

	date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("даты %02d.%02d не существует", day, month)
	}
	return date, nil
}
