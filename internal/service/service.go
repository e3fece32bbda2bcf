package service

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/google/gcal"
	"homework-bot/internal/homework"
	"homework-bot/internal/models"
)

type UserService interface {
	RegisterOrUpdate(telegramID int64, firstName, lastName, username string) (*models.User, error)
	UpdateProfile(telegramID int64, fullName, email string) error
	GetByTelegramID(telegramID int64) (*models.User, error)
	GetAllTelegramIDs() ([]int64, error)
	Forget(telegramID int64) error
}

// GroupResult - итог массового обновления ДЗ: сколько календарей
// обновлено и у кого не вышло.
type GroupResult struct {
	Updated  int
	Failed   []int64
	NoLesson []int64
}

type HomeworkService interface {
	// FindLesson ищет занятие предмета: ближайшее будущее при date == nil,
	// иначе в пределах суток date. nil без ошибки значит "не найдено".
	FindLesson(ctx context.Context, telegramID int64, subject string, classType models.LessonType, date *time.Time) (*calendar.Event, error)

	GetSegment(ctx context.Context, telegramID int64, eventID string, seg homework.Segment) (string, error)
	SaveSegment(ctx context.Context, telegramID int64, eventID string, seg homework.Segment, text string) error

	AttachFile(ctx context.Context, telegramID int64, eventID, fileName string, data []byte) (string, error)
	RemoveAttachments(ctx context.Context, telegramID int64, eventID string) error

	// Групповые операции проходят по всем зарегистрированным пользователям.
	GroupSave(ctx context.Context, subject string, classType models.LessonType, date *time.Time, text string) (*GroupResult, error)
	GroupAttach(ctx context.Context, actorID int64, subject string, classType models.LessonType, date *time.Time, fileName string, data []byte) (*GroupResult, error)
	GroupRemoveAttachments(ctx context.Context, subject string, classType models.LessonType, date *time.Time) (*GroupResult, error)
}

type ScheduleService interface {
	CreateSemester(ctx context.Context, telegramID int64, progress gcal.BatchProgress) (created, failed int, err error)
	DeleteSemester(ctx context.Context, telegramID int64, progress gcal.BatchProgress) (deleted, failed int, err error)
	UpcomingSeminars(ctx context.Context, telegramID int64, from, to time.Time) ([]*calendar.Event, error)
}

type TextbookService interface {
	Upload(ctx context.Context, telegramID int64, subject, fileName string, data []byte) (*models.Textbook, error)
	List(ctx context.Context, subject string) ([]*models.Textbook, error)
	Download(ctx context.Context, telegramID int64, fileID string) ([]byte, error)
}

type SummaryService interface {
	// Summarize делает конспект указанных страниц PDF и пишет строку
	// в журнал расходов токенов.
	Summarize(ctx context.Context, telegramID int64, subject, homeworkText string, pdf []byte, pages []int) (string, error)
}
