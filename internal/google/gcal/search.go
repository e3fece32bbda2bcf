package gcal

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/homework"
	"homework-bot/internal/models"
	"homework-bot/internal/timetable"
)

// EventStart парсит время начала события. Для событий на весь день
// берётся полночь UTC.
func EventStart(ev *calendar.Event) (time.Time, bool) {
	if ev.Start == nil {
		return time.Time{}, false
	}
	if ev.Start.DateTime != "" {
		t, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if ev.Start.Date != "" {
		t, err := time.Parse("2006-01-02", ev.Start.Date)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// EventEnd парсит время конца события.
func EventEnd(ev *calendar.Event) (time.Time, bool) {
	if ev.End == nil {
		return time.Time{}, false
	}
	if ev.End.DateTime != "" {
		t, err := time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// matches проверяет, что событие - занятие нужного предмета. Тип занятия
// различается по цвету: у одного предмета лекция и семинар в один день
// могут отличаться только им.
func matches(ev *calendar.Event, subject string, classType models.LessonType) bool {
	if homework.SubjectFromSummary(ev.Summary) != subject {
		return false
	}
	if classType == "" {
		return true
	}
	return ev.ColorId == timetable.ColorMap[classType]
}

// FindUpcoming ищет ближайшее будущее занятие предмета. classType может
// быть пустым, тогда подходит любое занятие предмета.
func (c *Client) FindUpcoming(ctx context.Context, from time.Time, subject string, classType models.LessonType) (*calendar.Event, error) {
	events, err := c.ListUpcoming(ctx, from)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if matches(ev, subject, classType) {
			return ev, nil
		}
	}
	return nil, nil
}

// FindOnDate ищет занятие предмета в пределах суток UTC.
func (c *Client) FindOnDate(ctx context.Context, day time.Time, subject string, classType models.LessonType) (*calendar.Event, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	events, err := c.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if matches(ev, subject, classType) {
			return ev, nil
		}
	}
	return nil, nil
}

// FindBotLessons возвращает все события диапазона, похожие на занятия из
// встроенного расписания. Ими ограничивается чистка календаря.
func (c *Client) FindBotLessons(ctx context.Context, from, to time.Time) ([]*calendar.Event, error) {
	events, err := c.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var lessons []*calendar.Event
	for _, ev := range events {
		if timetable.IsKnownSubject(homework.SubjectFromSummary(ev.Summary)) {
			lessons = append(lessons, ev)
		}
	}
	return lessons, nil
}
