package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
	"homework-bot/internal/service/summary"
	"homework-bot/internal/timetable"
)

// Мастер AI-конспекта: предмет, источник PDF, страницы, подтверждение.

func (b *Bot) cbSummaryStart(s *dialog.Session, ev dialog.Event) dialog.State {
	if !b.requireAuth(ev) {
		return dialog.StateNone
	}

	s.Ctx.Subjects = timetable.HomeworkSubjects()
	kb := subjectsKeyboard(s.Ctx.Subjects, "summary_subj_")
	b.edit(ev.ChatID, ev.MessageID, "По какому предмету сделать конспект?", &kb)
	return StateSummarySubject
}

func (b *Bot) cbSummarySubject(s *dialog.Session, ev dialog.Event) dialog.State {
	option, err := pickSubject(ev, "summary_subj_", s.Ctx.Subjects)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return StateSummarySubject
	}
	s.Ctx.Subject, s.Ctx.ClassType = timetable.ResolveSubjectOption(option)
	s.Ctx.TargetDate = nil

	// ДЗ и вложение подтягиваются с ближайшего занятия
	event, err := b.findTargetLesson(s, ev)
	if err != nil {
		log.Printf("⚠️ Поиск занятия для %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось заглянуть в календарь. Попробуйте позже.", nil)
		return dialog.StateNone
	}

	if event != nil {
		parts := []string{}
		if group := homework.Extract(event.Description, homework.SegmentGroup); group != "" {
			parts = append(parts, group)
		}
		if personal := homework.Extract(event.Description, homework.SegmentPersonal); personal != "" {
			parts = append(parts, personal)
		}
		s.Ctx.HomeworkText = strings.Join(parts, "\n")

		for _, att := range event.Attachments {
			if att.MimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(att.Title), ".pdf") {
				s.Ctx.Attachment = &homework.Attachment{
					FileID:   att.FileId,
					Title:    att.Title,
					MimeType: att.MimeType,
				}
				break
			}
		}
	}

	if s.Ctx.Attachment != nil {
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Да, используем его", "use_calendar_file"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📚 Выбрать другой учебник", "pick_another_book"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("⏪ В главное меню", "main_menu"),
			),
		)
		b.edit(ev.ChatID, ev.MessageID,
			fmt.Sprintf("К занятию прикреплён файл «%s». Взять его?", s.Ctx.Attachment.Title), &kb)
		return StateSummaryFile
	}

	return b.listTextbooks(s, ev)
}

// listTextbooks показывает учебники предмета из общего реестра
func (b *Bot) listTextbooks(s *dialog.Session, ev dialog.Event) dialog.State {
	ctx, cancel := opCtx()
	defer cancel()

	books, err := b.TextbookService.List(ctx, s.Ctx.Subject)
	if err != nil {
		log.Printf("⚠️ Список учебников «%s»: %v", s.Ctx.Subject, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не удалось получить список учебников.", nil)
		return dialog.StateNone
	}
	if len(books) == 0 {
		kb := backToMainKeyboard()
		b.edit(ev.ChatID, ev.MessageID,
			fmt.Sprintf("По предмету «%s» нет учебников и вложений. Попросите старосту добавить учебник.", s.Ctx.Subject), &kb)
		return dialog.StateNone
	}

	s.Ctx.Textbooks = s.Ctx.Textbooks[:0]
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, book := range books {
		s.Ctx.Textbooks = append(s.Ctx.Textbooks, *book)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 "+book.FileName, fmt.Sprintf("use_db_book_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏪ В главное меню", "main_menu"),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(ev.ChatID, ev.MessageID, "Выберите учебник.", &kb)
	return StateSummaryFile
}

// summarySource выбирает файл-вложение из контекста диалога
func summarySource(ctx *dialog.Context) (string, bool) {
	if ctx.Attachment == nil {
		return "", false
	}
	return ctx.Attachment.FileID, true
}

func (b *Bot) cbSummaryUseCalendarFile(s *dialog.Session, ev dialog.Event) dialog.State {
	// Кнопка могла прийти со старого сообщения, когда вложения в
	// контексте уже нет
	fileID, ok := summarySource(s.Ctx)
	if !ok {
		return b.listTextbooks(s, ev)
	}
	s.Ctx.FileChoice = fileID
	return b.promptPages(s, ev)
}

func (b *Bot) cbSummaryPickAnotherBook(s *dialog.Session, ev dialog.Event) dialog.State {
	return b.listTextbooks(s, ev)
}

func (b *Bot) cbSummaryUseDBBook(s *dialog.Session, ev dialog.Event) dialog.State {
	idx, err := strconv.Atoi(strings.TrimPrefix(ev.Data, "use_db_book_"))
	if err != nil || idx < 0 || idx >= len(s.Ctx.Textbooks) {
		log.Printf("⚠️ Неизвестный учебник в callback %q", ev.Data)
		return StateSummaryFile
	}
	s.Ctx.FileChoice = s.Ctx.Textbooks[idx].FileID
	return b.promptPages(s, ev)
}

func (b *Bot) promptPages(s *dialog.Session, ev dialog.Event) dialog.State {
	text := "Введите номера страниц для анализа (например: 45, 48-51)."
	if s.Ctx.HomeworkText != "" {
		text = fmt.Sprintf("Текущее задание:\n%s\n\n%s", s.Ctx.HomeworkText, text)
	}
	b.edit(ev.ChatID, ev.MessageID, text, nil)
	return StateSummaryPages
}

func (b *Bot) txtSummaryPages(s *dialog.Session, ev dialog.Event) dialog.State {
	pages, err := summary.ParsePages(ev.Text)
	if err != nil {
		b.send(ev.ChatID, fmt.Sprintf("❌ Неверный формат: %v\nВведите страницы как «45, 48-51».", err))
		return StateSummaryPages
	}

	s.Ctx.Pages = pages
	s.Ctx.PagesLabel = summary.PagesLabel(pages)

	kb := confirmSummaryKeyboard()
	b.sendWithKeyboard(ev.ChatID,
		fmt.Sprintf("Готовлю конспект по страницам: %s.\n\nНачать?", s.Ctx.PagesLabel), kb)
	return StateSummaryConfirm
}

func (b *Bot) cbSummaryGenerate(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Начинаю обработку... Это может занять минуту. ⏳", nil)

	subject, hwText := s.Ctx.Subject, s.Ctx.HomeworkText
	fileID, pages := s.Ctx.FileChoice, s.Ctx.Pages
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		pdf, err := b.TextbookService.Download(ctx, ev.UserID, fileID)
		if err != nil {
			log.Printf("⚠️ Скачивание PDF %s: %v", fileID, err)
			b.send(ev.ChatID, "❌ Ошибка при скачивании файла с Google Drive.")
			return
		}

		text, err := b.SummaryService.Summarize(ctx, ev.UserID, subject, hwText, pdf, pages)
		if err != nil {
			log.Printf("⚠️ Конспект для %d: %v", ev.UserID, err)
			b.send(ev.ChatID, "❌ Не удалось получить конспект от AI. Попробуйте позже.")
			return
		}

		kb := backToMainKeyboard()
		b.sendLong(ev.ChatID, text, &kb)
	}()
	return dialog.StateNone
}
