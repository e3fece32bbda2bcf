package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// tokenStore хранит токены в файлах token_<telegram id>.json.
type tokenStore struct {
	dir string
	mu  sync.Mutex
}

func newTokenStore(dir string) *tokenStore {
	return &tokenStore{dir: dir}
}

func (s *tokenStore) path(telegramID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("token_%d.json", telegramID))
}

func (s *tokenStore) Save(telegramID int64, tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(telegramID), data, 0o600)
}

func (s *tokenStore) Load(telegramID int64) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(telegramID))
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("битый файл токена %s: %w", s.path(telegramID), err)
	}
	return &tok, nil
}

func (s *tokenStore) Delete(telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(telegramID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
