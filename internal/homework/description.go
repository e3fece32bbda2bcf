package homework

import (
	"regexp"
	"strings"
)

// Теги-разделители сегментов в описании события. Совпадение ищется как
// подстрока, по первому вхождению, поэтому теги не должны встречаться
// внутри текста ДЗ: ввод с тегами отклоняется на границе диалога.
const (
	GroupTag    = "📌 Групповое ДЗ:"
	PersonalTag = "📝 Личное ДЗ:"

	// TitleTag суффикс заголовка события-«у этого занятия есть ДЗ»
	TitleTag = " ❕ДЗ"
)

// Segment селектор изменяемого сегмента описания
type Segment int

const (
	SegmentGroup Segment = iota
	SegmentPersonal
)

// Parts три логических сегмента одного поля description.
// TeacherNotes это всё до первого распознанного тега (тег ему не положен).
type Parts struct {
	TeacherNotes string
	Group        string
	Personal     string
}

// Split разбирает описание на сегменты. Нечитаемый остаток деградирует
// в заметки преподавателя, ошибок у разбора нет.
func Split(description string) Parts {
	var p Parts

	main := description
	groupRaw := ""
	if before, after, found := strings.Cut(description, GroupTag); found {
		main = before
		groupRaw = after
	}

	personalRaw := ""
	if before, after, found := strings.Cut(main, PersonalTag); found {
		// личный тег без группового: всё описание делится на заметки и личное ДЗ
		p.TeacherNotes = before
		personalRaw = after
	} else if before, after, found := strings.Cut(groupRaw, PersonalTag); found {
		p.TeacherNotes = main
		groupRaw = before
		personalRaw = after
	} else {
		p.TeacherNotes = main
	}

	p.TeacherNotes = strings.TrimSpace(p.TeacherNotes)
	p.Group = strings.TrimSpace(groupRaw)
	p.Personal = strings.TrimSpace(personalRaw)
	return p
}

// Render собирает описание обратно: заметки, затем непустые сегменты,
// каждый с пустой строкой, тегом и телом с новой строки. Групповой сегмент
// всегда предшествует личному.
func (p Parts) Render() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.TeacherNotes))

	appendSegment := func(tag, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(tag)
		b.WriteString("\n")
		b.WriteString(body)
	}
	appendSegment(GroupTag, p.Group)
	appendSegment(PersonalTag, p.Personal)

	return strings.TrimSpace(b.String())
}

// Merge заменяет один сегмент описания, не трогая два других.
// Пустое тело удаляет сегмент вместе с его тегом.
func Merge(description string, seg Segment, body string) string {
	p := Split(description)
	switch seg {
	case SegmentGroup:
		p.Group = strings.TrimSpace(body)
	case SegmentPersonal:
		p.Personal = strings.TrimSpace(body)
	}
	return p.Render()
}

// Extract возвращает тело сегмента для показа пользователю:
// от тега до ближайшего следующего распознанного тега или конца строки.
func Extract(description string, seg Segment) string {
	targetTag, otherTag := GroupTag, PersonalTag
	if seg == SegmentPersonal {
		targetTag, otherTag = PersonalTag, GroupTag
	}

	_, after, found := strings.Cut(description, targetTag)
	if !found {
		return ""
	}
	if pos := strings.Index(after, otherTag); pos != -1 {
		after = after[:pos]
	}
	return strings.TrimSpace(after)
}

// HasHomework true, если в описании есть хотя бы один непустой сегмент ДЗ
func HasHomework(description string) bool {
	p := Split(description)
	return p.Group != "" || p.Personal != ""
}

// ContainsTag проверяет пользовательский ввод: текст с тегом внутри
// при разборе был бы принят за границу сегмента
func ContainsTag(text string) bool {
	return strings.Contains(text, GroupTag) || strings.Contains(text, PersonalTag)
}

var subjectRe = regexp.MustCompile(`^(.*?)\s*\(`)

// SubjectFromSummary восстанавливает предмет из заголовка события:
// текст до первой скобки с аудиторией. Заголовок без скобки целиком
// считается предметом.
func SubjectFromSummary(summary string) string {
	summary = strings.TrimSpace(strings.ReplaceAll(summary, TitleTag, ""))
	if m := subjectRe.FindStringSubmatch(summary); m != nil {
		return strings.TrimSpace(m[1])
	}
	return summary
}
