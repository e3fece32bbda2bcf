package bot

import (
	"log"
	"strings"

	"homework-bot/internal/dialog"
)

// Регистрация: ФИО, затем email Google-аккаунта, затем ссылка на вход.

func (b *Bot) cbRegisterStart(s *dialog.Session, ev dialog.Event) dialog.State {
	b.edit(ev.ChatID, ev.MessageID, "Введите ваше ФИО.", nil)
	return StateRegisterName
}

func (b *Bot) txtRegisterName(s *dialog.Session, ev dialog.Event) dialog.State {
	name := strings.TrimSpace(ev.Text)
	if name == "" {
		b.send(ev.ChatID, "ФИО не может быть пустым. Введите ещё раз.")
		return StateRegisterName
	}

	s.Ctx.FullName = name
	b.send(ev.ChatID, "Отлично! Теперь введите ваш Google email.")
	return StateRegisterEmail
}

func (b *Bot) txtRegisterEmail(s *dialog.Session, ev dialog.Event) dialog.State {
	email := strings.TrimSpace(ev.Text)
	if !strings.Contains(email, "@") {
		b.send(ev.ChatID, "Это не похоже на email. Введите ещё раз.")
		return StateRegisterEmail
	}

	if err := b.UserService.UpdateProfile(ev.UserID, s.Ctx.FullName, email); err != nil {
		log.Printf("⚠️ Профиль %d: %v", ev.UserID, err)
		b.send(ev.ChatID, "❌ Не удалось сохранить данные. Попробуйте позже.")
		return dialog.StateNone
	}

	b.sendWithKeyboard(ev.ChatID,
		"Данные сохранены. Осталось дать боту доступ к календарю и диску.",
		authKeyboard(b.Auth.AuthURL(ev.UserID)))
	return dialog.StateNone
}
