package homework

import "strings"

// Attachment вложение события календаря
type Attachment struct {
	FileID   string
	Title    string
	MimeType string
	FileURL  string
}

// EventContent локальная копия изменяемых полей события. Методы держат
// инвариант: TitleTag стоит в заголовке тогда и только тогда, когда
// есть непустое ДЗ или вложение.
type EventContent struct {
	Summary     string
	Description string
	Attachments []Attachment
}

// SetSegment заменяет сегмент ДЗ; пустое тело удаляет его
func (e *EventContent) SetSegment(seg Segment, body string) {
	e.Description = Merge(e.Description, seg, body)
	e.refreshSummary()
}

// Attach добавляет вложение, если файла с таким id ещё нет
func (e *EventContent) Attach(att Attachment) {
	for _, existing := range e.Attachments {
		if existing.FileID == att.FileID {
			e.refreshSummary()
			return
		}
	}
	e.Attachments = append(e.Attachments, att)
	e.refreshSummary()
}

// RemoveAttachments убирает все вложения из локальной копии и
// возвращает их. Сами файлы на Drive удаляются вызывающей стороной.
func (e *EventContent) RemoveAttachments() []Attachment {
	removed := e.Attachments
	e.Attachments = nil
	e.refreshSummary()
	return removed
}

func (e *EventContent) refreshSummary() {
	summary := strings.TrimSpace(strings.ReplaceAll(e.Summary, TitleTag, ""))
	if HasHomework(e.Description) || len(e.Attachments) > 0 {
		summary += TitleTag
	}
	e.Summary = summary
}
