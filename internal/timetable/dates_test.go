package timetable

import (
	"testing"
	"time"
)

func TestParseDayMonth(t *testing.T) {
	now := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC)

	got, err := ParseDayMonth("15.09", now)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	want := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("получено %v, ожидалось %v", got, want)
	}

	// пробелы вокруг допустимы
	if _, err := ParseDayMonth("  1.12 ", now); err != nil {
		t.Errorf("дата с пробелами должна приниматься: %v", err)
	}
}

func TestParseDayMonthRejectsNonexistent(t *testing.T) {
	now := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC)

	// 31 февраля не нормализуется в март, а отклоняется
	bad := []string{"31.02", "30.02", "32.01", "0.05", "15.13", "15.0"}
	for _, input := range bad {
		if _, err := ParseDayMonth(input, now); err == nil {
			t.Errorf("дата %q должна отклоняться", input)
		}
	}
}

func TestParseDayMonthRejectsGarbage(t *testing.T) {
	now := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "15", "15.09.2025", "ab.cd", "сегодня"} {
		if _, err := ParseDayMonth(input, now); err == nil {
			t.Errorf("ввод %q должен отклоняться", input)
		}
	}
}
