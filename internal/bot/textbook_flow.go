package bot

import (
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/models/config"
	"homework-bot/internal/timetable"
)

// Мастер загрузки учебника в общий реестр.

func (b *Bot) cbTextbookAddStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		b.edit(ev.ChatID, ev.MessageID, "Учебники могут добавлять только старосты.", nil)
		return dialog.StateNone
	}
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.Subjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "textbook_subj_")
	b.edit(ev.ChatID, ev.MessageID, "По какому предмету учебник?", &kb)
	return StateTextbookSubject
}

func (b *Bot) cbTextbookSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	subject, err := pickSubject(ev, "textbook_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateTextbookSubject
	}
	s.Ctx.Subject = subject

	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nПришлите учебник PDF-документом.", subject), nil)
	return StateTextbookUpload
}

func (b *Bot) docTextbookUpload(s *dialog.Session, ev dialog.Event) dialog.State {
	b.send(ev.ChatID, "Загружаю учебник... ⏳")

	ctx, cancel := opCtx()
	defer cancel()
	textbook, err := b.TextbookService.Upload(ctx, ev.UserID, s.Ctx.Subject, ev.FileName, ev.FileBytes)
	if err != nil {
		log.Printf("⚠️ Загрузка учебника от %d: %v", ev.UserID, err)
		b.send(ev.ChatID, "❌ Не удалось загрузить учебник. Попробуйте позже.")
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.sendWithKeyboard(ev.ChatID,
		fmt.Sprintf("✅ Учебник «%s» добавлен к предмету «%s».", textbook.FileName, textbook.Subject), kb)
	return dialog.StateNone
}
