package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"homework-bot/internal/dialog"
	"homework-bot/internal/google/gcal"
	"homework-bot/internal/homework"
	"homework-bot/internal/models"
	"homework-bot/internal/models/config"
	"homework-bot/internal/timetable"
)

const (
	reminderCheckEvery = 15 * time.Minute
	reminderLookahead  = 30 * time.Minute
	reminderBeforeEnd  = 5 * time.Minute
)

// runSeminarReminders следит за семинарами во всех календарях и за
// 5 минут до конца пары напоминает старостам записать ДЗ. Один и тот же
// семинар встречается у многих пользователей, ключ eventID+дата
// сводит его к одному напоминанию.
func (b *Bot) runSeminarReminders(ctx context.Context) {
	var mu sync.Mutex
	scheduled := make(map[string]bool)

	ticker := time.NewTicker(reminderCheckEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.checkSeminars(ctx, &mu, scheduled)
		}
	}
}

func (b *Bot) checkSeminars(ctx context.Context, mu *sync.Mutex, scheduled map[string]bool) {
	ids, err := b.UserService.GetAllTelegramIDs()
	if err != nil {
		log.Printf("⚠️ Напоминания: список пользователей: %v", err)
		return
	}

	now := time.Now().UTC()
	for _, id := range ids {
		if !b.Auth.HasToken(id) {
			continue
		}

		seminars, err := b.ScheduleService.UpcomingSeminars(ctx, id, now, now.Add(reminderLookahead))
		if err != nil {
			log.Printf("⚠️ Напоминания: семинары пользователя %d: %v", id, err)
			continue
		}

		for _, seminar := range seminars {
			end, ok := gcal.EventEnd(seminar)
			if !ok {
				continue
			}
			fireAt := end.Add(-reminderBeforeEnd)
			if !fireAt.After(now) {
				continue
			}

			key := fmt.Sprintf("%s_%s", seminar.Id, end.Format("2006-01-02"))
			mu.Lock()
			if scheduled[key] {
				mu.Unlock()
				continue
			}
			scheduled[key] = true
			mu.Unlock()

			subject := homework.SubjectFromSummary(seminar.Summary)
			log.Printf("⏰ Напоминание по «%s» запланировано на %s", subject, fireAt.Format("15:04:05"))
			time.AfterFunc(time.Until(fireAt), func() {
				b.remindAdmins(subject)
			})
		}
	}
}

func (b *Bot) remindAdmins(subject string) {
	text := fmt.Sprintf("🔔 Напоминание: через 5 минут закончится семинар.\nНе забудь записать ДЗ по предмету «%s».", subject)
	for _, adminID := range config.AppConfig.Bot.AdminIDs {
		b.sendWithKeyboard(adminID, text, reminderKeyboard(subject))
	}
}

// reminderCallbackData кодирует предмет его индексом в списке предметов:
// полное название не влезает в лимит callback data в 64 байта.
func reminderCallbackData(subject string) string {
	for i, s := range timetable.Subjects() {
		if s == subject {
			return fmt.Sprintf("reminder_add_hw_%d", i)
		}
	}
	return "reminder_ignore"
}

// reminderSubject восстанавливает предмет из callback data напоминания
func reminderSubject(data string) (string, bool) {
	idx, err := strconv.Atoi(strings.TrimPrefix(data, "reminder_add_hw_"))
	subjects := timetable.Subjects()
	if err != nil || idx < 0 || idx >= len(subjects) {
		return "", false
	}
	return subjects[idx], true
}

// cbReminderAddHW запускает мастер группового ДЗ из напоминания,
// пропуская выбор предмета.
func (b *Bot) cbReminderAddHW(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		return dialog.StateNone
	}

	subject, ok := reminderSubject(ev.Data)
	if !ok {
		log.Printf("⚠️ Неизвестный предмет в callback %q", ev.Data)
		return dialog.StateNone
	}

	s.Ctx.Reset()
	s.Ctx.Subject = subject
	s.Ctx.ClassType = models.Seminar

	kb := dateKeyboard(s.Ctx.ClassType, "find_next_class_group_text")
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nВведите дату занятия в формате ДД.ММ или выберите ближайший семинар.", s.Ctx.Subject),
		&kb)
	return StateGroupHWDate
}

func (b *Bot) cbReminderIgnore(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Хорошо, не записываем.", nil)
	return dialog.StateNone
}
