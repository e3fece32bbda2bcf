package bot

import (
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
	"homework-bot/internal/timetable"
)

// Мастер правки личного ДЗ на ближайшем занятии: удалить текст,
// удалить файлы или заменить текст.

func (b *Bot) cbEditHWStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "edit_hw_subj_")
	b.edit(ev.ChatID, ev.MessageID, "ДЗ по какому предмету поправить?", &kb)
	return StateEditHWSubject
}

func (b *Bot) cbEditHWSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "edit_hw_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateEditHWSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)
	s.Ctx.TargetDate = nil

	event, err := b.findTargetLesson(s, ev)
	if err != nil {
		log.Printf("⚠️ Поиск занятия для %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось заглянуть в календарь. Попробуйте позже.", nil)
		return dialog.StateNone
	}
	if event == nil {
		kb := backToMainKeyboard()
		b.edit(ev.ChatID, ev.MessageID,
			fmt.Sprintf("Будущих занятий «%s» в календаре нет.", s.Ctx.Subject), &kb)
		return dialog.StateNone
	}

	s.Ctx.EventID = event.Id

	current := homework.Extract(event.Description, homework.SegmentPersonal)
	text := fmt.Sprintf("Занятие %s.\n", lessonLabel(event))
	if current == "" && len(event.Attachments) == 0 {
		kb := backToMainKeyboard()
		b.edit(ev.ChatID, ev.MessageID, text+"На этом занятии личного ДЗ нет.", &kb)
		return dialog.StateNone
	}
	if current != "" {
		text += fmt.Sprintf("Записано:\n%s\n", current)
	}
	if n := len(event.Attachments); n > 0 {
		text += fmt.Sprintf("Файлов прикреплено: %d.\n", n)
	}

	kb := editHWMenuKeyboard()
	b.edit(ev.ChatID, ev.MessageID, text+"\nЧто сделать?", &kb)
	return StateEditHWMenu
}

func (b *Bot) cbEditDeleteText(s *dialog.Session, ev dialog.Event) dialog.State {
	ctx, cancel := opCtx()
	defer cancel()
	if err := b.HomeworkService.SaveSegment(ctx, ev.UserID, s.Ctx.EventID, homework.SegmentPersonal, ""); err != nil {
		log.Printf("⚠️ Удаление ДЗ для %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось удалить текст. Попробуйте позже.", nil)
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.edit(ev.ChatID, ev.MessageID, "✅ Текст ДЗ удалён.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbEditDeleteFile(s *dialog.Session, ev dialog.Event) dialog.State {
	ctx, cancel := opCtx()
	defer cancel()
	if err := b.HomeworkService.RemoveAttachments(ctx, ev.UserID, s.Ctx.EventID); err != nil {
		log.Printf("⚠️ Удаление файлов для %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось удалить файлы. Попробуйте позже.", nil)
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.edit(ev.ChatID, ev.MessageID, "✅ Файлы откреплены от занятия.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbEditReplaceText(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Введите новый текст ДЗ.", nil)
	return StateEditHWText
}

func (b *Bot) txtEditHWText(s *dialog.Session, ev dialog.Event) dialog.State {
	if homework.ContainsTag(ev.Text) {
		b.send(ev.ChatID, "❌ Текст содержит служебную пометку, так нельзя. Перефразируйте и отправьте ещё раз.")
		return StateEditHWText
	}

	ctx, cancel := opCtx()
	defer cancel()
	if err := b.HomeworkService.SaveSegment(ctx, ev.UserID, s.Ctx.EventID, homework.SegmentPersonal, ev.Text); err != nil {
		log.Printf("⚠️ Замена ДЗ для %d: %v", ev.UserID, err)
		b.send(ev.ChatID, "❌ Не удалось сохранить текст. Попробуйте позже.")
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.sendWithKeyboard(ev.ChatID, "✅ Текст ДЗ заменён.", kb)
	return dialog.StateNone
}
