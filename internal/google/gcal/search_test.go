package gcal

import (
	"testing"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/models"
)

func lesson(summary, colorID string) *calendar.Event {
	return &calendar.Event{Summary: summary, ColorId: colorID}
}

func TestMatchesBySubject(t *testing.T) {
	ev := lesson("Физика (каб. 613)", "11")

	if !matches(ev, "Физика", models.Seminar) {
		t.Error("семинар по физике должен находиться")
	}
	if matches(ev, "Математический анализ", models.Seminar) {
		t.Error("чужой предмет не должен находиться")
	}
}

func TestMatchesDistinguishesTypeByColor(t *testing.T) {
	// лекция и лабораторная по одному предмету различаются только цветом
	lecture := lesson("Теоретические основы информатики (каб. 830)", "9")
	lab := lesson("Теоретические основы информатики (каб. 829)", "10")

	if matches(lecture, "Теоретические основы информатики", models.Lab) {
		t.Error("лекция не должна сходить за лабораторную")
	}
	if !matches(lab, "Теоретические основы информатики", models.Lab) {
		t.Error("лабораторная должна находиться по своему цвету")
	}
	if matches(lab, "Теоретические основы информатики", models.Seminar) {
		t.Error("лабораторная не должна сходить за семинар")
	}
}

func TestMatchesAnyTypeWhenEmpty(t *testing.T) {
	lecture := lesson("Физика (каб. 611)", "9")
	seminar := lesson("Физика (каб. 613)", "11")

	if !matches(lecture, "Физика", "") {
		t.Error("пустой тип должен принимать лекцию")
	}
	if !matches(seminar, "Физика", "") {
		t.Error("пустой тип должен принимать семинар")
	}
}

func TestEventStart(t *testing.T) {
	ev := &calendar.Event{Start: &calendar.EventDateTime{DateTime: "2025-09-02T08:30:00+03:00"}}
	start, ok := EventStart(ev)
	if !ok {
		t.Fatal("время начала не распознано")
	}
	if start.Hour() != 8 || start.Minute() != 30 {
		t.Errorf("получено %v", start)
	}

	allDay := &calendar.Event{Start: &calendar.EventDateTime{Date: "2025-09-02"}}
	start, ok = EventStart(allDay)
	if !ok {
		t.Fatal("событие на весь день не распознано")
	}
	if start.Day() != 2 {
		t.Errorf("получено %v", start)
	}

	if _, ok := EventStart(&calendar.Event{}); ok {
		t.Error("событие без начала не должно распознаваться")
	}
}

func TestEventEnd(t *testing.T) {
	ev := &calendar.Event{End: &calendar.EventDateTime{DateTime: "2025-09-02T10:05:00+03:00"}}
	end, ok := EventEnd(ev)
	if !ok {
		t.Fatal("время конца не распознано")
	}
	if end.Hour() != 10 || end.Minute() != 5 {
		t.Errorf("получено %v", end)
	}

	if _, ok := EventEnd(&calendar.Event{}); ok {
		t.Error("событие без конца не должно распознаваться")
	}
}
