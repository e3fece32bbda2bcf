package bot

import (
	"context"
	"fmt"
	"log"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
	"homework-bot/internal/models/config"
	"homework-bot/internal/service"
	"homework-bot/internal/timetable"
)

// Мастер правки группового ДЗ на ближайшем занятии.

func (b *Bot) cbEditGroupHWStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ могут вести только старосты.", nil)
		return dialog.StateNone
	}
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "edit_group_hw_subj_")
	b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ по какому предмету поправить?", &kb)
	return StateEditGroupHWSubject
}

func (b *Bot) cbEditGroupHWSubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "edit_group_hw_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateEditGroupHWSubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)
	s.Ctx.TargetDate = nil

	// Текущее состояние показывается по календарю старосты
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

	current := homework.Extract(event.Description, homework.SegmentGroup)
	text := fmt.Sprintf("Занятие %s.\n", lessonLabel(event))
	if current == "" && len(event.Attachments) == 0 {
		kb := backToMainKeyboard()
		b.edit(ev.ChatID, ev.MessageID, text+"Группового ДЗ на этом занятии нет.", &kb)
		return dialog.StateNone
	}
	if current != "" {
		text += fmt.Sprintf("Записано:\n%s\n", current)
	}
	if n := len(event.Attachments); n > 0 {
		text += fmt.Sprintf("Файлов прикреплено: %d.\n", n)
	}

	kb := editGroupHWMenuKeyboard()
	b.edit(ev.ChatID, ev.MessageID, text+"\nЧто сделать? Изменение затронет всю группу.", &kb)
	return StateEditGroupHWMenu
}

// groupEdit запускает правку по всей группе в фоне и показывает итог
func (b *Bot) groupEdit(ev dialog.Event, subject string, op func(ctx context.Context) (*service.GroupResult, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		res, err := op(ctx)
		if err != nil {
			log.Printf("⚠️ Групповая правка «%s»: %v", subject, err)
			b.send(ev.ChatID, "❌ Не удалось обновить групповое ДЗ.")
			return
		}
		kb := backToMainKeyboard()
		b.sendWithKeyboard(ev.ChatID, fmtGroupResult(res.Updated, res.Failed, res.NoLesson), kb)
	}()
}

func (b *Bot) cbEditGroupDeleteText(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Удаляю текст у всей группы... ⏳", nil)

	subject, classType := s.Ctx.Subject, s.Ctx.ClassType
	b.groupEdit(ev, subject, func(ctx context.Context) (*service.GroupResult, error) {
		return b.HomeworkService.GroupSave(ctx, subject, classType, nil, "")
	})
	return dialog.StateNone
}

func (b *Bot) cbEditGroupDeleteFile(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Открепляю файлы у всей группы... ⏳", nil)

	subject, classType := s.Ctx.Subject, s.Ctx.ClassType
	b.groupEdit(ev, subject, func(ctx context.Context) (*service.GroupResult, error) {
		return b.HomeworkService.GroupRemoveAttachments(ctx, subject, classType, nil)
	})
	return dialog.StateNone
}

func (b *Bot) cbEditGroupReplaceText(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Введите новый текст группового ДЗ.", nil)
	return StateEditGroupHWText
}

func (b *Bot) txtEditGroupHWText(s *dialog.Session, ev dialog.Event) dialog.State {
	if homework.ContainsTag(ev.Text) {
		b.send(ev.ChatID, "❌ Текст содержит служебную пометку, так нельзя. Перефразируйте и отправьте ещё раз.")
		return StateEditGroupHWText
	}

	b.send(ev.ChatID, "Заменяю текст у всей группы... ⏳")

	subject, classType, text := s.Ctx.Subject, s.Ctx.ClassType, ev.Text
	b.groupEdit(ev, subject, func(ctx context.Context) (*service.GroupResult, error) {
		return b.HomeworkService.GroupSave(ctx, subject, classType, nil, text)
	})
	return dialog.StateNone
}
