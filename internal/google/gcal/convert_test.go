package gcal

import (
	"testing"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/homework"
)

func TestContentRoundTrip(t *testing.T) {
	ev := &calendar.Event{
		Summary:     "Физика (каб. 613) ❕ДЗ",
		Description: "Новикова Т.Л.",
		Attachments: []*calendar.EventAttachment{
			{FileId: "abc", Title: "задачник.pdf", MimeType: "application/pdf", FileUrl: "https://drive.google.com/file/d/abc"},
		},
	}

	content := Content(ev)
	if content.Summary != ev.Summary || content.Description != ev.Description {
		t.Errorf("текстовые поля не перенесены: %+v", content)
	}
	if len(content.Attachments) != 1 || content.Attachments[0].FileID != "abc" {
		t.Fatalf("вложения не перенесены: %+v", content.Attachments)
	}

	content.Attachments = append(content.Attachments, homework.Attachment{FileID: "def", Title: "конспект.pdf"})
	ApplyContent(ev, content)
	if len(ev.Attachments) != 2 || ev.Attachments[1].FileId != "def" {
		t.Errorf("вложения не применены к событию: %+v", ev.Attachments)
	}
	if len(ev.ForceSendFields) != 0 {
		t.Errorf("ForceSendFields не нужен при непустых вложениях: %v", ev.ForceSendFields)
	}
}

func TestApplyContentClearsAttachments(t *testing.T) {
	ev := &calendar.Event{
		Attachments: []*calendar.EventAttachment{{FileId: "abc"}},
	}

	ApplyContent(ev, &homework.EventContent{Summary: "Физика (каб. 613)"})
	if len(ev.Attachments) != 0 {
		t.Errorf("вложения должны очищаться: %+v", ev.Attachments)
	}
	forced := false
	for _, f := range ev.ForceSendFields {
		if f == "Attachments" {
			forced = true
		}
	}
	if !forced {
		t.Error("пустой список вложений должен отправляться принудительно")
	}
}
