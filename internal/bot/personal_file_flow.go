package bot

import (
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/timetable"
)

// Мастер прикрепления файла к занятию.

func (b *Bot) cbFileAddStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "file_subj_")
	b.edit(ev.ChatID, ev.MessageID, "К какому предмету прикрепить файл?", &kb)
	return StateFileSubject
}

func (b *Bot) cbFileSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "file_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateFileSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)

	kb := dateKeyboard(s.Ctx.ClassType, "find_next_class")
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nВведите дату занятия в формате ДД.ММ или выберите ближайшее.", s.Ctx.Subject),
		&kb)
	return StateFileDate
}

func (b *Bot) cbFileNextClass(s *dialog.Session, ev dialog.Event) dialog.State {
	s.Ctx.TargetDate = nil
	return b.promptFileUpload(s, ev)
}

func (b *Bot) txtFileDate(s *dialog.Session, ev dialog.Event) dialog.State {
	if err := parseTargetDate(s, ev.Text); err != nil {
		b.send(ev.ChatID, fmt.Sprintf("❌ %v\nВведите дату в формате ДД.ММ, например 17.11.", err))
		return StateFileDate
	}
	return b.promptFileUpload(s, ev)
}

func (b *Bot) promptFileUpload(s *dialog.Session, ev dialog.Event) dialog.State {
	event, err := b.findTargetLesson(s, ev)
	if err != nil {
		log.Printf("⚠️ Поиск занятия для %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось заглянуть в календарь. Попробуйте позже.", nil)
		return dialog.StateNone
	}
	if event == nil {
		kb := backToMainKeyboard()
		b.edit(ev.ChatID, ev.MessageID,
			fmt.Sprintf("Занятие «%s» не нашлось. Проверьте, что расписание создано.", s.Ctx.Subject), &kb)
		return dialog.StateNone
	}

	s.Ctx.EventID = event.Id
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Занятие %s.\nПришлите файл документом.", lessonLabel(event)), nil)
	return StateFileUpload
}

func (b *Bot) docFileUpload(s *dialog.Session, ev dialog.Event) dialog.State {
	b.send(ev.ChatID, "Загружаю файл на Google Drive... ⏳")

	ctx, cancel := opCtx()
	defer cancel()
	link, err := b.HomeworkService.AttachFile(ctx, ev.UserID, s.Ctx.EventID, ev.FileName, ev.FileBytes)
	if err != nil {
		log.Printf("⚠️ Прикрепление файла для %d: %v", ev.UserID, err)
		b.send(ev.ChatID, "❌ Не удалось прикрепить файл. Попробуйте позже.")
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.sendWithKeyboard(ev.ChatID,
		fmt.Sprintf("✅ Файл «%s» прикреплён к занятию.\n%s", ev.FileName, link), kb)
	return dialog.StateNone
}
