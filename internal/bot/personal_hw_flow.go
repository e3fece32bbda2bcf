package bot

import (
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
	"homework-bot/internal/timetable"
)

// Мастер записи личного ДЗ: предмет, занятие, текст.

func (b *Bot) cbHWAddStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "hw_subj_")
	b.edit(ev.ChatID, ev.MessageID, "По какому предмету записать ДЗ?", &kb)
	return StateHWSubject
}

func (b *Bot) cbHWSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "hw_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateHWSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)

	kb := dateKeyboard(s.Ctx.ClassType, "find_next_class")
	b.edit(ev.ChatID, ev.MessageID,
		fmt.Sprintf("Предмет: %s.\nВведите дату занятия в формате ДД.ММ или выберите ближайшее.", s.Ctx.Subject),
		&kb)
	return StateHWDate
}

func (b *Bot) cbHWNextClass(s *dialog.Session, ev dialog.Event) dialog.State {
	s.Ctx.TargetDate = nil
	return b.promptHWText(s, ev)
}

func (b *Bot) txtHWDate(s *dialog.Session, ev dialog.Event) dialog.State {
	if err := parseTargetDate(s, ev.Text); err != nil {
		b.send(ev.ChatID, fmt.Sprintf("❌ %v\nВведите дату в формате ДД.ММ, например 17.11.", err))
		return StateHWDate
	}
	return b.promptHWText(s, ev)
}

// promptHWText находит занятие и просит текст ДЗ. Если ДЗ уже записано,
// показывает его: новый текст перезапишет старый.
func (b *Bot) promptHWText(s *dialog.Session, ev dialog.Event) dialog.State {
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

	text := fmt.Sprintf("Занятие %s.\n", lessonLabel(event))
	if existing := homework.Extract(event.Description, homework.SegmentPersonal); existing != "" {
		text += fmt.Sprintf("Сейчас записано:\n%s\n\nНовый текст заменит его. ", existing)
	}
	text += "Введите текст ДЗ."
	b.edit(ev.ChatID, ev.MessageID, text, nil)
	return StateHWText
}

func (b *Bot) txtHWText(s *dialog.Session, ev dialog.Event) dialog.State {
	if homework.ContainsTag(ev.Text) {
		b.send(ev.ChatID, "❌ Текст содержит служебную пометку, так нельзя. Перефразируйте и отправьте ещё раз.")
		return StateHWText
	}

	ctx, cancel := opCtx()
	defer cancel()
	if err := b.HomeworkService.SaveSegment(ctx, ev.UserID, s.Ctx.EventID, homework.SegmentPersonal, ev.Text); err != nil {
		log.Printf("⚠️ Запись ДЗ для %d: %v", ev.UserID, err)
		b.send(ev.ChatID, "❌ Не удалось записать ДЗ. Попробуйте позже.")
		return dialog.StateNone
	}

	kb := backToMainKeyboard()
	b.sendWithKeyboard(ev.ChatID, fmt.Sprintf("✅ ДЗ по предмету «%s» записано.", s.Ctx.Subject), kb)
	return dialog.StateNone
}
