package bot

import (
	"testing"

	"homework-bot/internal/dialog"
	"homework-bot/internal/homework"
)

func TestSummarySourceWithoutAttachment(t *testing.T) {
	// пустой контекст: кнопка пришла со старого сообщения
	if _, ok := summarySource(&dialog.Context{}); ok {
		t.Error("без вложения выбор файла должен отклоняться")
	}
}

func TestSummarySourceWithAttachment(t *testing.T) {
	ctx := &dialog.Context{
		Attachment: &homework.Attachment{FileID: "abc", Title: "задачник.pdf"},
	}
	fileID, ok := summarySource(ctx)
	if !ok || fileID != "abc" {
		t.Errorf("получено (%q, %v), ожидалось (\"abc\", true)", fileID, ok)
	}
}
