package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/google/auth"
	"homework-bot/internal/google/gcal"
	"homework-bot/internal/homework"
	"homework-bot/internal/models"
	"homework-bot/internal/service"
	"homework-bot/internal/timetable"
)

type scheduleService struct {
	auth *auth.Manager
}

func NewScheduleService(authManager *auth.Manager) service.ScheduleService {
	return &scheduleService{auth: authManager}
}

func (s *scheduleService) calendarFor(ctx context.Context, telegramID int64) (*gcal.Client, error) {
	ts, err := s.auth.TokenSource(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return gcal.NewClient(ctx, ts)
}

// lessonEvent собирает событие занятия. Заголовок хранит предмет и
// аудиторию, описание - преподавателя, цвет - тип занятия.
func lessonEvent(entry models.ScheduleEntry, day time.Time) (*calendar.Event, error) {
	start, err := timetable.ClockAt(day, entry.Start)
	if err != nil {
		return nil, err
	}
	end, err := timetable.ClockAt(day, entry.End)
	if err != nil {
		return nil, err
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s (каб. %s)", entry.Subject, entry.Room),
		Description: entry.Teacher,
		ColorId:     timetable.ColorMap[entry.Type],
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}, nil
}

// semesterEvents разворачивает расписание в события с понедельника
// текущей недели до конца семестра.
func semesterEvents(now time.Time) ([]*calendar.Event, error) {
	var events []*calendar.Event
	for day := timetable.WeekStart(now.In(timetable.Location)); !day.After(timetable.SemesterEnd); day = day.AddDate(0, 0, 1) {
		for _, entry := range timetable.EntriesFor(day) {
			ev, err := lessonEvent(entry, day)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func (s *scheduleService) CreateSemester(ctx context.Context, telegramID int64, progress gcal.BatchProgress) (int, int, error) {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return 0, 0, err
	}

	events, err := semesterEvents(time.Now())
	if err != nil {
		return 0, 0, fmt.Errorf("сборка расписания: %w", err)
	}

	log.Printf("📅 Создаю %d занятий для %d", len(events), telegramID)
	failed := client.InsertBatch(ctx, events, progress)
	return len(events) - failed, failed, nil
}

// DeleteSemester убирает из календаря занятия, созданные ботом, начиная
// с понедельника текущей недели. Чужие события не трогаются: удаляются
// только события с предметами из встроенного расписания.
func (s *scheduleService) DeleteSemester(ctx context.Context, telegramID int64, progress gcal.BatchProgress) (int, int, error) {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return 0, 0, err
	}

	from := timetable.WeekStart(time.Now().In(timetable.Location))
	lessons, err := client.FindBotLessons(ctx, from, timetable.SemesterEnd.AddDate(0, 0, 1))
	if err != nil {
		return 0, 0, err
	}

	ids := make([]string, len(lessons))
	for i, ev := range lessons {
		ids[i] = ev.Id
	}

	log.Printf("🗑 Удаляю %d занятий у %d", len(ids), telegramID)
	failed := client.DeleteBatch(ctx, ids, progress)
	return len(ids) - failed, failed, nil
}

// UpcomingSeminars семинары из встроенного расписания в [from, to).
func (s *scheduleService) UpcomingSeminars(ctx context.Context, telegramID int64, from, to time.Time) ([]*calendar.Event, error) {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	events, err := client.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	seminarColor := timetable.ColorMap[models.Seminar]
	var seminars []*calendar.Event
	for _, ev := range events {
		if ev.ColorId != seminarColor {
			continue
		}
		if !timetable.IsKnownSubject(homework.SubjectFromSummary(ev.Summary)) {
			continue
		}
		seminars = append(seminars, ev)
	}
	return seminars, nil
}
