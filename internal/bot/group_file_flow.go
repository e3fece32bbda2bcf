package bot

import (
	"context"
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/models/config"
	"homework-bot/internal/timetable"
)

// Мастер группового файла: файл прикрепляется к занятию у всей группы.

func (b *Bot) cbGroupFileAddStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ могут вести только старосты.", nil)
		return dialog.StateNone
	}
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "group_file_subj_")
	b.edit(ev.ChatID, ev.MessageID, "К какому предмету прикрепить файл для группы?", &kb)
	return StateGroupFileSubject
}

func (b *Bot) cbGroupFileSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "group_file_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateGroupFileSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)

	kb := dateKeyboard(s.Ctx.ClassType, "find_next_class_for_group_file")
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nВведите дату занятия в формате ДД.ММ или выберите ближайшее.", s.Ctx.Subject),
		&kb)
	return StateGroupFileDate
}

func (b *Bot) cbGroupFileNextClass(s *dialog.Session, ev dialog.Event) dialog.State {
	s.Ctx.TargetDate = nil
	b.edit(ev.ChatID, ev.MessageID, "Пришлите файл документом.", nil)
	return StateGroupFileUpload
}

func (b *Bot) txtGroupFileDate(s *dialog.Session, ev dialog.Event) dialog.State {
	if err := parseTargetDate(s, ev.Text); err != nil {
		b.send(ev.ChatID, fmt.Sprintf("❌ %v\nВведите дату в формате ДД.ММ, например 17.11.", err))
		return StateGroupFileDate
	}
	b.send(ev.ChatID, "Пришлите файл документом.")
	return StateGroupFileUpload
}

func (b *Bot) docGroupFileUpload(s *dialog.Session, ev dialog.Event) dialog.State {
	b.send(ev.ChatID, "Прикрепляю файл всей группе... ⏳")

	subject, classType, date := s.Ctx.Subject, s.Ctx.ClassType, s.Ctx.TargetDate
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		res, err := b.HomeworkService.GroupAttach(ctx, ev.UserID, subject, classType, date, ev.FileName, ev.FileBytes)
		if err != nil {
			log.Printf("⚠️ Групповой файл: %v", err)
			b.send(ev.ChatID, "❌ Не удалось прикрепить файл группе.")
			return
		}
		kb := backToMainKeyboard()
		b.sendWithKeyboard(ev.ChatID, fmtGroupResult(res.Updated, res.Failed, res.NoLesson), kb)
	}()
	return dialog.StateNone
}
