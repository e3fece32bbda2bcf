package user

import (
	"fmt"
	"log"
	"time"

	"homework-bot/internal/google/auth"
	"homework-bot/internal/models"
	"homework-bot/internal/repository"
	"homework-bot/internal/service"
)

type userService struct {
	repo repository.UserRepository
	auth *auth.Manager
}

func NewUserService(repo repository.UserRepository, authManager *auth.Manager) service.UserService {
	return &userService{repo: repo, auth: authManager}
}

func (s *userService) RegisterOrUpdate(telegramID int64, firstName, lastName, username string) (*models.User, error) {
	user := &models.User{
		TelegramID:   telegramID,
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		RegisteredAt: time.Now(),
	}

	if err := s.repo.CreateOrUpdate(user); err != nil {
		return nil, fmt.Errorf("регистрация пользователя %d: %w", telegramID, err)
	}

	log.Printf("👤 Пользователь %d (%s) зарегистрирован", telegramID, username)
	return user, nil
}

func (s *userService) UpdateProfile(telegramID int64, fullName, email string) error {
	if err := s.repo.UpdateProfile(telegramID, fullName, email); err != nil {
		return fmt.Errorf("обновление профиля %d: %w", telegramID, err)
	}
	return nil
}

func (s *userService) GetByTelegramID(telegramID int64) (*models.User, error) {
	return s.repo.GetByTelegramID(telegramID)
}

func (s *userService) GetAllTelegramIDs() ([]int64, error) {
	return s.repo.GetAllTelegramIDs()
}

// Forget убирает пользователя из рассылки групповых ДЗ и удаляет его
// токен Google.
func (s *userService) Forget(telegramID int64) error {
	if err := s.auth.Logout(telegramID); err != nil {
		return fmt.Errorf("удаление токена %d: %w", telegramID, err)
	}
	if err := s.repo.Delete(telegramID); err != nil {
		return fmt.Errorf("удаление пользователя %d: %w", telegramID, err)
	}

	log.Printf("👋 Пользователь %d вышел", telegramID)
	return nil
}
