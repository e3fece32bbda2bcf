package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"homework-bot/internal/dialog"
	"homework-bot/internal/models/config"
)

const opTimeout = 90 * time.Second

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// registerFlows собирает таблицу переходов всех диалогов. Переходы между
// состояниями объявлены здесь, обработчики лежат по файлам мастеров.
func (b *Bot) registerFlows() {
	m := b.machine

	// Кнопки, работающие из любого состояния: меню обрывают текущий мастер
	m.Fallback(dialog.KindCallback, "main_menu", b.cbMainMenu)
	m.Fallback(dialog.KindCallback, "login", b.cbLogin)
	m.Fallback(dialog.KindCallback, "register", b.cbRegisterStart)
	m.Fallback(dialog.KindCallback, "logout", b.cbLogout)
	m.Fallback(dialog.KindCallback, "schedule_menu", b.cbScheduleMenu)
	m.Fallback(dialog.KindCallback, "homework_management_menu", b.cbHomeworkMenu)
	m.Fallback(dialog.KindCallback, "personal_hw_menu", b.cbPersonalHWMenu)
	m.Fallback(dialog.KindCallback, "group_hw_menu", b.cbGroupHWMenu)

	// Старт мастеров
	m.Fallback(dialog.KindCallback, "create_schedule", b.cbCreateSchedule)
	m.Fallback(dialog.KindCallback, "delete_schedule", b.cbDeleteSchedule)
	m.Fallback(dialog.KindCallback, "homework_add_start", b.cbHWAddStart)
	m.Fallback(dialog.KindCallback, "add_file_start", b.cbFileAddStart)
	m.Fallback(dialog.KindCallback, "homework_edit_start", b.cbEditHWStart)
	m.Fallback(dialog.KindCallback, "group_hw_add_text_start", b.cbGroupHWAddStart)
	m.Fallback(dialog.KindCallback, "group_hw_add_file_start", b.cbGroupFileAddStart)
	m.Fallback(dialog.KindCallback, "group_hw_edit_start", b.cbEditGroupHWStart)
	m.Fallback(dialog.KindCallback, "add_textbook_start", b.cbTextbookAddStart)
	m.Fallback(dialog.KindCallback, "summary_start", b.cbSummaryStart)

	// Напоминания о семинарах
	m.Fallback(dialog.KindCallback, "reminder_add_hw_", b.cbReminderAddHW)
	m.Fallback(dialog.KindCallback, "reminder_ignore", b.cbReminderIgnore)

	// Регистрация
	m.OnText(StateRegisterName, b.txtRegisterName)
	m.OnText(StateRegisterEmail, b.txtRegisterEmail)

	// Личное ДЗ: текст
	m.OnCallback(StateHWSubject, "hw_subj_", b.cbHWSubject)
	m.OnCallback(StateHWDate, "find_next_class", b.cbHWNextClass)
	m.OnText(StateHWDate, b.txtHWDate)
	m.OnText(StateHWText, b.txtHWText)

	// Личное ДЗ: файл
	m.OnCallback(StateFileSubject, "file_subj_", b.cbFileSubject)
	m.OnCallback(StateFileDate, "find_next_class", b.cbFileNextClass)
	m.OnText(StateFileDate, b.txtFileDate)
	m.OnDocument(StateFileUpload, b.docFileUpload)

	// Редактирование личного ДЗ
	m.OnCallback(StateEditHWSubject, "edit_hw_subj_", b.cbEditHWSubject)
	m.OnCallback(StateEditHWMenu, "edit_delete_text", b.cbEditDeleteText)
	m.OnCallback(StateEditHWMenu, "edit_delete_file", b.cbEditDeleteFile)
	m.OnCallback(StateEditHWMenu, "edit_replace_text", b.cbEditReplaceText)
	m.OnText(StateEditHWText, b.txtEditHWText)

	// Групповое ДЗ: текст
	m.OnCallback(StateGroupHWSubject, "group_hw_subj_", b.cbGroupHWSubject)
	m.OnCallback(StateGroupHWDate, "find_next_class_group_text", b.cbGroupHWNextClass)
	m.OnText(StateGroupHWDate, b.txtGroupHWDate)
	m.OnText(StateGroupHWText, b.txtGroupHWText)

	// Групповое ДЗ: файл
	m.OnCallback(StateGroupFileSubject, "group_file_subj_", b.cbGroupFileSubject)
	m.OnCallback(StateGroupFileDate, "find_next_class_for_group_file", b.cbGroupFileNextClass)
	m.OnText(StateGroupFileDate, b.txtGroupFileDate)
	m.OnDocument(StateGroupFileUpload, b.docGroupFileUpload)

	// Редактирование группового ДЗ
	m.OnCallback(StateEditGroupHWSubject, "edit_group_hw_subj_", b.cbEditGroupHWSubject)
	m.OnCallback(StateEditGroupHWMenu, "edit_group_delete_text", b.cbEditGroupDeleteText)
	m.OnCallback(StateEditGroupHWMenu, "edit_group_delete_file", b.cbEditGroupDeleteFile)
	m.OnCallback(StateEditGroupHWMenu, "edit_group_replace_text", b.cbEditGroupReplaceText)
	m.OnText(StateEditGroupHWText, b.txtEditGroupHWText)

	// Учебники
	m.OnCallback(StateTextbookSubject, "textbook_subj_", b.cbTextbookSubject)
	m.OnDocument(StateTextbookUpload, b.docTextbookUpload)

	// Конспект
	m.OnCallback(StateSummarySubject, "summary_subj_", b.cbSummarySubject)
	m.OnCallback(StateSummaryFile, "use_calendar_file", b.cbSummaryUseCalendarFile)
	m.OnCallback(StateSummaryFile, "pick_another_book", b.cbSummaryPickAnotherBook)
	m.OnCallback(StateSummaryFile, "use_db_book_", b.cbSummaryUseDBBook)
	m.OnText(StateSummaryPages, b.txtSummaryPages)
	m.OnCallback(StateSummaryConfirm, "confirm_summary_yes", b.cbSummaryGenerate)

	// Удаление расписания
	m.OnCallback(StateDeleteScheduleConfirm, "confirm_delete", b.cbConfirmDeleteSchedule)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.machine.Reset(chatID)
		b.handleStart(msg)
	case "menu":
		b.machine.Reset(chatID)
		b.showMainMenu(chatID, 0)
	default:
		b.send(chatID, "Неизвестная команда. Базовая команда: /start")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := int64(msg.From.ID)

	if _, err := b.UserService.RegisterOrUpdate(userID, msg.From.FirstName, msg.From.LastName, msg.From.UserName); err != nil {
		log.Printf("⚠️ Регистрация %d: %v", userID, err)
	}

	if config.AppConfig.Bot.Debug && !b.Auth.HasToken(userID) {
		b.send(chatID, "🤖 Бот в режиме отладки. Авторизация пропущена.")
		b.showMainMenu(chatID, 0)
		return
	}

	if b.Auth.HasToken(userID) {
		b.send(chatID, "Вы уже авторизованы.")
		b.showMainMenu(chatID, 0)
		return
	}

	text := "Привет! Я помогу вести расписание и ДЗ в Google Календаре.\n\n" +
		"Зарегистрируйтесь, если вы тут впервые, или войдите в аккаунт."
	b.sendWithKeyboard(chatID, text, startKeyboard())
}

func (b *Bot) showMainMenu(chatID int64, messageID int) {
	kb := mainMenuKeyboard()
	b.edit(chatID, messageID, "Главное меню. Что делаем?", &kb)
}

// OnAuthSuccess зовётся веб-сервером после обмена кода OAuth на токен.
func (b *Bot) OnAuthSuccess(telegramID int64) {
	log.Printf("🔑 Пользователь %d авторизовался в Google", telegramID)
	b.machine.Reset(telegramID)
	b.send(telegramID, "✅ Авторизация прошла успешно!")
	b.showMainMenu(telegramID, 0)
}

// requireAuth общий гард мастеров: без токена Google делать нечего
func (b *Bot) requireAuth(ev dialog.Event) bool {
	if b.Auth.HasToken(ev.UserID) {
		return true
	}
	b.edit(ev.ChatID, ev.MessageID, "Сначала нужно войти в аккаунт Google.", nil)
	b.sendWithKeyboard(ev.ChatID, "Авторизуйтесь по ссылке:", authKeyboard(b.Auth.AuthURL(ev.UserID)))
	return false
}

func (b *Bot) cbMainMenu(s *dialog.Session, ev dialog.Event) dialog.State {
	b.showMainMenu(ev.ChatID, ev.MessageID)
	return dialog.StateNone
}

func (b *Bot) cbLogin(s *dialog.Session, ev dialog.Event) dialog.State {
	kb := authKeyboard(b.Auth.AuthURL(ev.UserID))
	b.edit(ev.ChatID, ev.MessageID, "Перейдите по ссылке и разрешите доступ к календарю и диску.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbLogout(s *dialog.Session, ev dialog.Event) dialog.State {
	if err := b.UserService.Forget(ev.UserID); err != nil {
		log.Printf("⚠️ Выход пользователя %d: %v", ev.UserID, err)
		b.edit(ev.ChatID, ev.MessageID, "❌ Не получилось выйти. Попробуйте позже.", nil)
		return dialog.StateNone
	}
	b.edit(ev.ChatID, ev.MessageID, "Вы вышли из аккаунта. Для входа наберите /start.", nil)
	return dialog.StateNone
}

func (b *Bot) cbScheduleMenu(s *dialog.Session, ev dialog.Event) dialog.State {
	kb := scheduleMenuKeyboard()
	b.edit(ev.ChatID, ev.MessageID, "Меню расписания.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbHomeworkMenu(s *dialog.Session, ev dialog.Event) dialog.State {
	kb := homeworkMenuKeyboard(ev.UserID)
	b.edit(ev.ChatID, ev.MessageID, "Меню ДЗ.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbPersonalHWMenu(s *dialog.Session, ev dialog.Event) dialog.State {
	kb := personalHWMenuKeyboard()
	b.edit(ev.ChatID, ev.MessageID, "Личное ДЗ.", &kb)
	return dialog.StateNone
}

func (b *Bot) cbGroupHWMenu(s *dialog.Session, ev dialog.Event) dialog.State {
	if !config.AppConfig.IsAdmin(ev.UserID) {
		b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ могут вести только старосты.", nil)
		return dialog.StateNone
	}
	kb := groupHWMenuKeyboard()
	b.edit(ev.ChatID, ev.MessageID, "Групповое ДЗ. Изменения применяются ко всей группе.", &kb)
	return dialog.StateNone
}

func fmtGroupResult(updated int, failed, noLesson []int64) string {
	text := fmt.Sprintf("Готово. Обновлено календарей: %d.", updated)
	if len(noLesson) > 0 {
		text += fmt.Sprintf("\nБез подходящего занятия: %d.", len(noLesson))
	}
	if len(failed) > 0 {
		text += fmt.Sprintf("\n❌ Не удалось обновить: %d. Подробности в логах.", len(failed))
	}
	return text
}
