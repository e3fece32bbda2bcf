package bot

import (
	"testing"

	"homework-bot/internal/timetable"
)

func TestReminderCallbackDataFitsTelegramLimit(t *testing.T) {
	for _, subject := range timetable.Subjects() {
		data := reminderCallbackData(subject)
		// Телеграм отклоняет callback data длиннее 64 байт
		if len(data) > 64 {
			t.Errorf("callback data для «%s» длиннее 64 байт: %q", subject, data)
		}

		got, ok := reminderSubject(data)
		if !ok || got != subject {
			t.Errorf("предмет «%s» не восстановился из %q: (%q, %v)", subject, data, got, ok)
		}
	}
}

func TestReminderSubjectRejectsGarbage(t *testing.T) {
	bad := []string{
		"reminder_add_hw_",
		"reminder_add_hw_99",
		"reminder_add_hw_-1",
		"reminder_add_hw_математика",
		"reminder_ignore",
	}
	for _, data := range bad {
		if subject, ok := reminderSubject(data); ok {
			t.Errorf("callback %q не должен распознаваться, получено «%s»", data, subject)
		}
	}
}
