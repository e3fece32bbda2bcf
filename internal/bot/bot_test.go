package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"homework-bot/internal/dialog"
)

func TestHandleUpdateSurvivesPanic(t *testing.T) {
	// Бот без API и callback без сообщения: обработчик падает внутри,
	// но паника не должна выйти наружу и уронить процесс.
	b := &Bot{machine: dialog.New()}
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "1",
			From: &tgbotapi.User{ID: 7},
			Data: "use_calendar_file",
		},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("паника вышла из обработчика апдейта: %v", r)
		}
	}()
	b.handleUpdate(update)
}
