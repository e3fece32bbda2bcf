package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"homework-bot/internal/dialog"
)

// Массовые операции с календарём идут дольше обычных запросов
const batchTimeout = 15 * time.Minute

func (b *Bot) cbCreateSchedule(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	b.edit(ev.ChatID, ev.MessageID, "Создаю расписание до конца семестра... ⏳", nil)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		created, failed, err := b.ScheduleService.CreateSemester(ctx, ev.UserID, func(done, total int) {
			if done < total {
				b.send(ev.ChatID, fmt.Sprintf("Создано %d из %d занятий...", done, total))
			}
		})
		if err != nil {
			log.Printf("⚠️ Создание расписания для %d: %v", ev.UserID, err)
			b.send(ev.ChatID, "❌ Не удалось создать расписание.")
			return
		}

		text := fmt.Sprintf("✅ Расписание готово: %d занятий в календаре.", created)
		if failed > 0 {
			text += fmt.Sprintf("\n❌ Не создалось: %d.", failed)
		}
		kb := backToScheduleKeyboard()
		b.sendWithKeyboard(ev.ChatID, text, kb)
	}()
	return dialog.StateNone
}

func (b *Bot) cbDeleteSchedule(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	kb := confirmDeleteScheduleKeyboard()
	b.edit(ev.ChatID, ev.MessageID,
		"Удалить все занятия, созданные ботом, начиная с текущей недели?", &kb)
	return StateDeleteScheduleConfirm
}

func (b *Bot) cbConfirmDeleteSchedule(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Удаляю занятия... ⏳", nil)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		deleted, failed, err := b.ScheduleService.DeleteSemester(ctx, ev.UserID, nil)
		if err != nil {
			log.Printf("⚠️ Удаление расписания для %d: %v", ev.UserID, err)
			b.send(ev.ChatID, "❌ Не удалось удалить расписание.")
			return
		}

		text := fmt.Sprintf("✅ Удалено занятий: %d.", deleted)
		if failed > 0 {
			text += fmt.Sprintf("\n❌ Не удалилось: %d.", failed)
		}
		kb := backToScheduleKeyboard()
		b.sendWithKeyboard(ev.ChatID, text, kb)
	}()
	return dialog.StateNone
}
