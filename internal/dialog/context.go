package dialog

import (
	"time"

	"homework-bot/internal/homework"
	"homework-bot/internal/models"
)

// Context рабочее состояние одного диалога: накапливается по шагам
// мастера и очищается на терминальном состоянии или при отмене.
type Context struct {
	Subject      string
	ClassType    models.LessonType
	TargetDate   *time.Time // nil значит искать ближайшее занятие от текущего момента
	HomeworkText string
	FileName     string
	FileBytes    []byte
	EventID      string

	// Варианты, показанные пользователю на предыдущем шаге
	Subjects  []string
	Textbooks []models.Textbook

	// Для генерации конспекта
	Attachment *homework.Attachment
	FileChoice string
	Pages      []int
	PagesLabel string

	// Для анкеты регистрации
	FullName string
}

// Reset очищает контекст, не трогая саму сессию
func (c *Context) Reset() {
	*c = Context{}
}
