package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"homework-bot/internal/google/auth"
	"homework-bot/internal/models/config"
)

// Notifier сообщает боту, что пользователь прошёл авторизацию
type Notifier func(telegramID int64)

// Handler принимает редирект Google OAuth и отдаёт его результат боту.
type Handler struct {
	auth   *auth.Manager
	notify Notifier
}

func NewHandler(authManager *auth.Manager, notify Notifier) *Handler {
	return &Handler{auth: authManager, notify: notify}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2callback", h.handleOAuthCallback)
	mux.HandleFunc("/auth_success", h.handleAuthSuccess)
	return mux
}

// handleOAuthCallback обменивает код на токен. В state лежит telegram id,
// положенный туда при выдаче ссылки.
func (h *Handler) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(r.URL.Query().Get("state"), 10, 64)
	if err != nil {
		http.Error(w, "некорректный state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "нет кода авторизации", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	if err := h.auth.Exchange(ctx, telegramID, code); err != nil {
		log.Printf("⚠️ OAuth для %d: %v", telegramID, err)
		http.Error(w, "не удалось завершить авторизацию", http.StatusInternalServerError)
		return
	}

	go notifyBot(telegramID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h3>✅ Авторизация прошла успешно!</h3><p>Можно вернуться в Телеграм.</p></body></html>")
}

// notifyBot дёргает внутренний вебхук бота. Разделение через HTTP
// позволяет выносить OAuth-сервер на отдельный хост.
func notifyBot(telegramID int64) {
	body, _ := json.Marshal(map[string]int64{"user_id": telegramID})
	resp, err := http.Post(config.AppConfig.Bot.CallbackURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️ Вебхук бота: %v", err)
		return
	}
	resp.Body.Close()
}

func (h *Handler) handleAuthSuccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.UserID == 0 {
		http.Error(w, "некорректное тело запроса", http.StatusBadRequest)
		return
	}

	h.notify(payload.UserID)
	w.WriteHeader(http.StatusOK)
}
