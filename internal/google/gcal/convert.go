package gcal

import (
	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/homework"
)

// Content вынимает из события части, с которыми работает редактор ДЗ.
func Content(ev *calendar.Event) *homework.EventContent {
	content := &homework.EventContent{
		Summary:     ev.Summary,
		Description: ev.Description,
	}
	for _, att := range ev.Attachments {
		content.Attachments = append(content.Attachments, homework.Attachment{
			FileID:   att.FileId,
			Title:    att.Title,
			MimeType: att.MimeType,
			FileURL:  att.FileUrl,
		})
	}
	return content
}

// ApplyContent переносит отредактированные части обратно в событие.
func ApplyContent(ev *calendar.Event, content *homework.EventContent) {
	ev.Summary = content.Summary
	ev.Description = content.Description
	ev.Attachments = nil
	for _, att := range content.Attachments {
		ev.Attachments = append(ev.Attachments, &calendar.EventAttachment{
			FileId:   att.FileID,
			Title:    att.Title,
			MimeType: att.MimeType,
			FileUrl:  att.FileURL,
		})
	}
	// Без этого поля пустой список вложений не уходит на сервер и
	// старые файлы остаются висеть на событии.
	if len(ev.Attachments) == 0 {
		ev.ForceSendFields = append(ev.ForceSendFields, "Attachments")
	}
}
