package repository

import (
	"context"

	"homework-bot/internal/models"
)

type UserRepository interface {
	CreateOrUpdate(user *models.User) error
	GetByTelegramID(telegramID int64) (*models.User, error)
	UpdateProfile(telegramID int64, fullName, email string) error
	Delete(telegramID int64) error
	GetAllTelegramIDs() ([]int64, error)
}

type TextbookRepository interface {
	Create(ctx context.Context, textbook *models.Textbook) error
	GetBySubject(ctx context.Context, subject string) ([]*models.Textbook, error)
}
