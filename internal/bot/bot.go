package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"homework-bot/internal/dialog"
	"homework-bot/internal/google/auth"
	"homework-bot/internal/models/config"
	"homework-bot/internal/service"
)

type Bot struct {
	api             *tgbotapi.BotAPI
	UserService     service.UserService
	HomeworkService service.HomeworkService
	ScheduleService service.ScheduleService
	TextbookService service.TextbookService
	SummaryService  service.SummaryService
	Auth            *auth.Manager
	machine         *dialog.Machine
}

func NewBot(
	userService service.UserService,
	homeworkService service.HomeworkService,
	scheduleService service.ScheduleService,
	textbookService service.TextbookService,
	summaryService service.SummaryService,
	authManager *auth.Manager,
) (*Bot, error) {
	cfg := config.AppConfig.Bot

	if cfg.Token == "" {
		log.Panic("BOT_TOKEN не установлен в конфигурации")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	api.Debug = cfg.Debug

	log.Printf("🤖 Бот инициализирован: %s (debug: %v)", api.Self.UserName, cfg.Debug)
	log.Printf("👑 Администраторы: %v", cfg.AdminIDs)

	b := &Bot{
		api:             api,
		UserService:     userService,
		HomeworkService: homeworkService,
		ScheduleService: scheduleService,
		TextbookService: textbookService,
		SummaryService:  summaryService,
		Auth:            authManager,
		machine:         dialog.New(),
	}
	b.registerFlows()
	return b, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Авторизован как %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	go b.runSeminarReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	// Паника одного апдейта не должна ронять бота целиком
	defer func() {
		if r := recover(); r != nil {
			log.Printf("🔥 Паника при обработке апдейта: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Телеграм ждёт ответа на каждый callback, иначе кнопка "крутится"
	if _, err := b.api.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("⚠️ AnswerCallbackQuery: %v", err)
	}

	// Для очень старых сообщений Телеграм не присылает Message
	if query.Message == nil {
		return
	}

	ev := dialog.Event{
		Kind:      dialog.KindCallback,
		ChatID:    query.Message.Chat.ID,
		UserID:    int64(query.From.ID),
		MessageID: query.Message.MessageID,
		Data:      query.Data,
	}
	if !b.machine.Dispatch(ev) {
		log.Printf("🤷 Необработанный callback %q от %d", query.Data, ev.UserID)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	if msg.Document != nil {
		data, err := b.downloadDocument(msg.Document)
		if err != nil {
			log.Printf("⚠️ Скачивание документа от %d: %v", chatID, err)
			b.send(chatID, "❌ Не удалось скачать файл. Попробуйте ещё раз.")
			return
		}
		ev := dialog.Event{
			Kind:      dialog.KindDocument,
			ChatID:    chatID,
			UserID:    int64(msg.From.ID),
			FileName:  msg.Document.FileName,
			FileBytes: data,
		}
		if !b.machine.Dispatch(ev) {
			b.send(chatID, "Сейчас я не жду файл. Откройте нужное меню через /start.")
		}
		return
	}

	ev := dialog.Event{
		Kind:   dialog.KindText,
		ChatID: chatID,
		UserID: int64(msg.From.ID),
		Text:   msg.Text,
	}
	if !b.machine.Dispatch(ev) {
		b.send(chatID, "Не понимаю. Откройте меню через /start.")
	}
}

// downloadDocument выкачивает файл с серверов Телеграма в память.
func (b *Bot) downloadDocument(doc *tgbotapi.Document) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: doc.FileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: статус %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
