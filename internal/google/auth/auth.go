package auth

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"homework-bot/internal/models/config"
)

// Scopes, которые бот запрашивает у пользователя: календарь для расписания
// и ДЗ, drive для файлов. Полный drive нужен, чтобы скачивать чужие
// учебники по ссылке из общего реестра.
var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/drive",
}

type Manager struct {
	oauth *oauth2.Config
	store *tokenStore
}

func NewManager(cfg config.GoogleConfig) *Manager {
	return &Manager{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		store: newTokenStore(cfg.TokenDir),
	}
}

// AuthURL возвращает ссылку для входа. В state кладём telegram id,
// чтобы колбэк знал, чей это токен.
func (m *Manager) AuthURL(telegramID int64) string {
	state := strconv.FormatInt(telegramID, 10)
	return m.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange меняет код авторизации на токен и сохраняет его на диск.
func (m *Manager) Exchange(ctx context.Context, telegramID int64, code string) error {
	tok, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("обмен кода на токен: %w", err)
	}
	if err := m.store.Save(telegramID, tok); err != nil {
		return fmt.Errorf("сохранение токена: %w", err)
	}
	return nil
}

// HasToken сообщает, выполнял ли пользователь вход.
func (m *Manager) HasToken(telegramID int64) bool {
	_, err := m.store.Load(telegramID)
	return err == nil
}

// TokenSource возвращает самообновляющийся источник токенов пользователя.
// Обновлённый токен сразу пишется обратно на диск, иначе после истечения
// access token пришлось бы логиниться заново.
func (m *Manager) TokenSource(ctx context.Context, telegramID int64) (oauth2.TokenSource, error) {
	tok, err := m.store.Load(telegramID)
	if err != nil {
		return nil, fmt.Errorf("пользователь %d не авторизован: %w", telegramID, err)
	}
	return &persistingSource{
		inner:      m.oauth.TokenSource(ctx, tok),
		store:      m.store,
		telegramID: telegramID,
		last:       tok,
	}, nil
}

// Logout удаляет сохранённый токен пользователя.
func (m *Manager) Logout(telegramID int64) error {
	return m.store.Delete(telegramID)
}

type persistingSource struct {
	inner      oauth2.TokenSource
	store      *tokenStore
	telegramID int64
	last       *oauth2.Token
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.inner.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if err := s.store.Save(s.telegramID, tok); err != nil {
			return nil, fmt.Errorf("обновление токена на диске: %w", err)
		}
	}
	return tok, nil
}
