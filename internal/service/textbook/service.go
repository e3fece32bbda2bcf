package textbook

import (
	"context"
	"fmt"
	"log"

	"homework-bot/internal/google/auth"
	"homework-bot/internal/google/gdrive"
	"homework-bot/internal/models"
	"homework-bot/internal/models/config"
	"homework-bot/internal/repository"
	"homework-bot/internal/service"
)

type textbookService struct {
	repo repository.TextbookRepository
	auth *auth.Manager
}

func NewTextbookService(repo repository.TextbookRepository, authManager *auth.Manager) service.TextbookService {
	return &textbookService{repo: repo, auth: authManager}
}

func (s *textbookService) driveFor(ctx context.Context, telegramID int64) (*gdrive.Client, error) {
	ts, err := s.auth.TokenSource(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return gdrive.NewClient(ctx, ts)
}

// Upload кладёт учебник на диск загрузившего и записывает его в общий
// реестр, чтобы остальные находили его по предмету.
func (s *textbookService) Upload(ctx context.Context, telegramID int64, subject, fileName string, data []byte) (*models.Textbook, error) {
	drive, err := s.driveFor(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	// Учебники складываются в общую папку курса, если она задана,
	// иначе в личную папку бота на диске загрузившего.
	folderID := config.AppConfig.Google.TextbooksFolder
	if folderID == "" {
		folderID, err = drive.EnsureFolder(ctx)
		if err != nil {
			return nil, err
		}
	}

	file, err := drive.Upload(ctx, folderID, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("загрузка учебника: %w", err)
	}

	textbook := &models.Textbook{
		Subject:  subject,
		FileName: file.Name,
		FileID:   file.FileID,
	}
	if err := s.repo.Create(ctx, textbook); err != nil {
		return nil, fmt.Errorf("запись учебника в реестр: %w", err)
	}

	log.Printf("📚 Учебник «%s» по предмету «%s» загружен пользователем %d", fileName, subject, telegramID)
	return textbook, nil
}

func (s *textbookService) List(ctx context.Context, subject string) ([]*models.Textbook, error) {
	return s.repo.GetBySubject(ctx, subject)
}

func (s *textbookService) Download(ctx context.Context, telegramID int64, fileID string) ([]byte, error) {
	drive, err := s.driveFor(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return drive.Download(ctx, fileID)
}
