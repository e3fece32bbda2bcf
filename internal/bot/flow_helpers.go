package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/dialog"
	"homework-bot/internal/google/gcal"
	"homework-bot/internal/timetable"
)

// pickSubject достаёт выбранный предмет из callback data вида
// "<prefix><i>" по списку, показанному на клавиатуре.
func pickSubject(ev dialog.Event, prefix string, subjects []string) (string, error) {
	idx, err := strconv.Atoi(strings.TrimPrefix(ev.Data, prefix))
	if err != nil || idx < 0 || idx >= len(subjects) {
		return "", fmt.Errorf("неизвестный предмет в callback %q", ev.Data)
	}
	return subjects[idx], nil
}

// findTargetLesson ищет событие занятия по контексту диалога: предмет,
// тип и либо дата, либо ближайшее будущее занятие.
func (b *Bot) findTargetLesson(s *dialog.Session, ev dialog.Event) (*calendar.Event, error) {
	ctx, cancel := opCtx()
	defer cancel()
	return b.HomeworkService.FindLesson(ctx, ev.UserID, s.Ctx.Subject, s.Ctx.ClassType, s.Ctx.TargetDate)
}

// lessonLabel дата занятия для сообщений
func lessonLabel(event *calendar.Event) string {
	if start, ok := gcal.EventStart(event); ok {
		return start.In(timetable.Location).Format("02.01 в 15:04")
	}
	return "без даты"
}

// parseTargetDate разбирает ввод ДД.ММ и кладёт дату в контекст диалога
func parseTargetDate(s *dialog.Session, text string) error {
	date, err := timetable.ParseDayMonth(text, time.Now())
	if err != nil {
		return err
	}
	s.Ctx.TargetDate = &date
	return nil
}
