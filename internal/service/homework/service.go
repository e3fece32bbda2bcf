package homework

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/google/auth"
	"homework-bot/internal/google/gcal"
	"homework-bot/internal/google/gdrive"
	hw "homework-bot/internal/homework"
	"homework-bot/internal/models"
	"homework-bot/internal/repository"
	"homework-bot/internal/service"
)

type homeworkService struct {
	users repository.UserRepository
	auth  *auth.Manager
}

func NewHomeworkService(users repository.UserRepository, authManager *auth.Manager) service.HomeworkService {
	return &homeworkService{users: users, auth: authManager}
}

func (s *homeworkService) calendarFor(ctx context.Context, telegramID int64) (*gcal.Client, error) {
	ts, err := s.auth.TokenSource(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return gcal.NewClient(ctx, ts)
}

func (s *homeworkService) driveFor(ctx context.Context, telegramID int64) (*gdrive.Client, error) {
	ts, err := s.auth.TokenSource(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return gdrive.NewClient(ctx, ts)
}

func (s *homeworkService) FindLesson(ctx context.Context, telegramID int64, subject string, classType models.LessonType, date *time.Time) (*calendar.Event, error) {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return client.FindUpcoming(ctx, time.Now().UTC(), subject, classType)
	}
	return client.FindOnDate(ctx, *date, subject, classType)
}

func (s *homeworkService) GetSegment(ctx context.Context, telegramID int64, eventID string, seg hw.Segment) (string, error) {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return "", err
	}
	ev, err := client.Get(ctx, eventID)
	if err != nil {
		return "", err
	}
	return hw.Extract(ev.Description, seg), nil
}

func (s *homeworkService) SaveSegment(ctx context.Context, telegramID int64, eventID string, seg hw.Segment, text string) error {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return err
	}
	return s.saveSegment(ctx, client, eventID, seg, text)
}

func (s *homeworkService) saveSegment(ctx context.Context, client *gcal.Client, eventID string, seg hw.Segment, text string) error {
	ev, err := client.Get(ctx, eventID)
	if err != nil {
		return err
	}

	content := gcal.Content(ev)
	content.SetSegment(seg, text)
	gcal.ApplyContent(ev, content)

	_, err = client.Update(ctx, ev)
	return err
}

func (s *homeworkService) AttachFile(ctx context.Context, telegramID int64, eventID, fileName string, data []byte) (string, error) {
	drive, err := s.driveFor(ctx, telegramID)
	if err != nil {
		return "", err
	}
	uploaded, err := s.uploadToDrive(ctx, drive, fileName, data)
	if err != nil {
		return "", err
	}

	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if err := s.attachTo(ctx, client, eventID, uploaded); err != nil {
		return "", err
	}
	return uploaded.FileURL, nil
}

func (s *homeworkService) uploadToDrive(ctx context.Context, drive *gdrive.Client, fileName string, data []byte) (*hw.Attachment, error) {
	folderID, err := drive.EnsureFolder(ctx)
	if err != nil {
		return nil, err
	}
	file, err := drive.Upload(ctx, folderID, fileName, data)
	if err != nil {
		return nil, err
	}
	return &hw.Attachment{
		FileID:   file.FileID,
		Title:    file.Name,
		MimeType: file.MimeType,
		FileURL:  file.ViewLink,
	}, nil
}

func (s *homeworkService) attachTo(ctx context.Context, client *gcal.Client, eventID string, att *hw.Attachment) error {
	ev, err := client.Get(ctx, eventID)
	if err != nil {
		return err
	}

	content := gcal.Content(ev)
	content.Attach(*att)
	gcal.ApplyContent(ev, content)

	_, err = client.Update(ctx, ev)
	return err
}

func (s *homeworkService) RemoveAttachments(ctx context.Context, telegramID int64, eventID string) error {
	client, err := s.calendarFor(ctx, telegramID)
	if err != nil {
		return err
	}
	ev, err := client.Get(ctx, eventID)
	if err != nil {
		return err
	}

	content := gcal.Content(ev)
	removed := content.RemoveAttachments()
	gcal.ApplyContent(ev, content)

	if _, err = client.Update(ctx, ev); err != nil {
		return err
	}

	// Файлы чистим в последнюю очередь и без фатальных ошибок: файл мог
	// лежать на чужом диске или быть уже удалён руками.
	if drive, err := s.driveFor(ctx, telegramID); err == nil {
		for _, att := range removed {
			if err := drive.Delete(ctx, att.FileID); err != nil {
				log.Printf("⚠️ Не удалось удалить файл %s: %v", att.FileID, err)
			}
		}
	}
	return nil
}

// forEachUser прогоняет op по всем зарегистрированным пользователям.
// Ошибка одного пользователя не останавливает остальных.
func (s *homeworkService) forEachUser(ctx context.Context, subject string, classType models.LessonType, date *time.Time, op func(client *gcal.Client, ev *calendar.Event) error) (*service.GroupResult, error) {
	ids, err := s.users.GetAllTelegramIDs()
	if err != nil {
		return nil, fmt.Errorf("список пользователей: %w", err)
	}

	result := &service.GroupResult{}
	for _, id := range ids {
		client, err := s.calendarFor(ctx, id)
		if err != nil {
			log.Printf("⚠️ Пользователь %d без токена, пропускаю: %v", id, err)
			result.Failed = append(result.Failed, id)
			continue
		}

		var ev *calendar.Event
		if date == nil {
			ev, err = client.FindUpcoming(ctx, time.Now().UTC(), subject, classType)
		} else {
			ev, err = client.FindOnDate(ctx, *date, subject, classType)
		}
		if err != nil {
			log.Printf("⚠️ Поиск занятия у %d: %v", id, err)
			result.Failed = append(result.Failed, id)
			continue
		}
		if ev == nil {
			log.Printf("ℹ️ У пользователя %d нет занятия «%s»", id, subject)
			result.NoLesson = append(result.NoLesson, id)
			continue
		}

		if err := op(client, ev); err != nil {
			log.Printf("⚠️ Обновление события у %d: %v", id, err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Updated++
	}
	return result, nil
}

func (s *homeworkService) GroupSave(ctx context.Context, subject string, classType models.LessonType, date *time.Time, text string) (*service.GroupResult, error) {
	return s.forEachUser(ctx, subject, classType, date, func(client *gcal.Client, ev *calendar.Event) error {
		return s.saveSegment(ctx, client, ev.Id, hw.SegmentGroup, text)
	})
}

// GroupAttach загружает файл один раз на диск инициатора и прикрепляет
// его ко всем календарям. Файл публичный, поэтому ссылка работает у всех.
func (s *homeworkService) GroupAttach(ctx context.Context, actorID int64, subject string, classType models.LessonType, date *time.Time, fileName string, data []byte) (*service.GroupResult, error) {
	drive, err := s.driveFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	att, err := s.uploadToDrive(ctx, drive, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("загрузка файла на диск: %w", err)
	}

	return s.forEachUser(ctx, subject, classType, date, func(client *gcal.Client, ev *calendar.Event) error {
		return s.attachTo(ctx, client, ev.Id, att)
	})
}

func (s *homeworkService) GroupRemoveAttachments(ctx context.Context, subject string, classType models.LessonType, date *time.Time) (*service.GroupResult, error) {
	return s.forEachUser(ctx, subject, classType, date, func(client *gcal.Client, ev *calendar.Event) error {
		content := gcal.Content(ev)
		content.RemoveAttachments()
		gcal.ApplyContent(ev, content)
		_, err := client.Update(ctx, ev)
		return err
	})
}
