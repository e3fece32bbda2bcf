package bot

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"homework-bot/internal/service/summary"
)

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️ Отправка сообщения в %d: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️ Отправка сообщения в %d: %v", chatID, err)
	}
}

// edit заменяет текст сообщения с кнопками. messageID == 0 означает,
// что редактировать нечего, тогда уходит новое сообщение.
func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		if keyboard != nil {
			b.sendWithKeyboard(chatID, text, *keyboard)
		} else {
			b.send(chatID, text)
		}
		return
	}

	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️ Редактирование сообщения %d в %d: %v", messageID, chatID, err)
	}
}

// sendMarkdown шлёт текст с разметкой, при битой разметке повторяет
// отправку обычным текстом.
func (b *Bot) sendMarkdown(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️ Markdown не распарсился, шлю обычным текстом: %v", err)
		plain := tgbotapi.NewMessage(chatID, text)
		if keyboard != nil {
			plain.ReplyMarkup = *keyboard
		}
		if _, err := b.api.Send(plain); err != nil {
			log.Printf("⚠️ Отправка сообщения в %d: %v", chatID, err)
		}
	}
}

// sendLong режет длинный текст на части, клавиатура вешается только
// на последнюю.
func (b *Bot) sendLong(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	chunks := summary.SplitMessage(text, summary.ChunkSize)
	for i, chunk := range chunks {
		if i == len(chunks)-1 {
			b.sendMarkdown(chatID, chunk, keyboard)
		} else {
			b.sendMarkdown(chatID, chunk, nil)
		}
	}
}
