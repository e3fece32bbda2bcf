package bot

import (
	"context"
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
	"homework-bot/internal/models/config"
	"homework-bot/internal/timetable"
)

// Мастер группового ДЗ: текст пишется в календари всех участников.

func (b *Bot) cbGroupHWAddStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ могут вести только старосты.", nil)
		return dialog.StateNone
	}
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "group_hw_subj_")
	b.edit(ev.ChatID, ev.MessageID, "По какому предмету записать групповое ДЗ?", &kb)
	return StateGroupHWSubject
}

func (b *Bot) cbGroupHWSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "group_hw_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateGroupHWSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)

	kb := dateKeyboard(s.Ctx.ClassType, "find_next_class_group_text")
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nВведите дату занятия в формате ДД.ММ или выберите ближайшее.", s.Ctx.Subject),
		&kb)
	return StateGroupHWDate
}

func (b *Bot) cbGroupHWNextClass(s *dialog.Session, ev dialog.Event) dialog.State {
	s.Ctx.TargetDate = nil
	b.edit(ev.ChatID, ev.MessageID, "Введите текст группового ДЗ.", nil)
	return StateGroupHWText
}

func (b *Bot) txtGroupHWDate(s *dialog.Session, ev dialog.Event) dialog.State {
	if err := parseTargetDate(s, ev.Text); err != nil {
		b.send(ev.ChatID, fmt.Sprintf("❌ %v\nВведите дату в формате ДД.ММ, например 17.11.", err))
		return StateGroupHWDate
	}
	b.send(ev.ChatID, "Введите текст группового ДЗ.")
	return StateGroupHWText
}

func (b *Bot) txtGroupHWText(s *dialog.Session, ev dialog.Event) dialog.State {
	if homework.ContainsTag(ev.Text) {
		b.send(ev.ChatID, "❌ Текст содержит служебную пометку, так нельзя. Перефразируйте и отправьте ещё раз.")
		return StateGroupHWText
	}

	b.send(ev.ChatID, "Записываю ДЗ всей группе... ⏳")

	subject, classType, date, text := s.Ctx.Subject, s.Ctx.ClassType, s.Ctx.TargetDate, ev.Text
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		res, err := b.HomeworkService.GroupSave(ctx, subject, classType, date, text)
		if err != nil {
			log.Printf("⚠️ Групповое ДЗ: %v", err)
			b.send(ev.ChatID, "❌ Не удалось записать групповое ДЗ.")
			return
		}
		kb := backToMainKeyboard()
		b.sendWithKeyboard(ev.ChatID, fmtGroupResult(res.Updated, res.Failed, res.NoLesson), kb)
	}()
	return dialog.StateNone
}
