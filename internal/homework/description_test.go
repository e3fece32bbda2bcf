package homework

import (
	"strings"
	"testing"
)

func TestSplitRenderRoundTrip(t *testing.T) {
	cases := []Parts{
		{TeacherNotes: "Преподаватель: Иванова Е.П."},
		{TeacherNotes: "Преподаватель: Иванова Е.П.", Group: "прочитать главу 3"},
		{TeacherNotes: "Преподаватель: Иванова Е.П.", Personal: "решить №5, №7"},
		{Group: "контрольная в пятницу", Personal: "доделать лабу"},
		{TeacherNotes: "Аудитория меняется,\nсм. объявление", Group: "задачи 1-10\nсо звёздочкой", Personal: "повторить лекцию"},
		{},
	}

	for _, want := range cases {
		got := Split(want.Render())
		if got != want {
			t.Errorf("round trip: получили %+v, ожидали %+v", got, want)
		}
	}
}

func TestMergeKeepsOtherSegments(t *testing.T) {
	desc := Parts{
		TeacherNotes: "Лектор: Смирнов",
		Group:        "групповое задание",
		Personal:     "личное задание",
	}.Render()

	merged := Merge(desc, SegmentPersonal, "новое личное")
	p := Split(merged)
	if p.TeacherNotes != "Лектор: Смирнов" || p.Group != "групповое задание" {
		t.Fatalf("личное слияние задело чужие сегменты: %+v", p)
	}
	if p.Personal != "новое личное" {
		t.Fatalf("личный сегмент не заменён: %q", p.Personal)
	}

	merged = Merge(merged, SegmentGroup, "новое групповое")
	p = Split(merged)
	if p.Personal != "новое личное" || p.TeacherNotes != "Лектор: Смирнов" {
		t.Fatalf("групповое слияние задело чужие сегменты: %+v", p)
	}
}

func TestMergeIdempotent(t *testing.T) {
	desc := Parts{
		TeacherNotes: "Лектор: Смирнов",
		Group:        "задачи 1-3",
		Personal:     "выучить определения",
	}.Render()

	for _, seg := range []Segment{SegmentGroup, SegmentPersonal} {
		again := Merge(desc, seg, Extract(desc, seg))
		if again != desc {
			t.Errorf("слияние собственного значения изменило описание:\n%q\nстало\n%q", desc, again)
		}
	}
}

func TestMergeEmptyBodyDeletesSegment(t *testing.T) {
	desc := Parts{TeacherNotes: "заметки", Group: "групповое", Personal: "личное"}.Render()

	noGroup := Merge(desc, SegmentGroup, "")
	if strings.Contains(noGroup, GroupTag) {
		t.Fatalf("тег группового ДЗ остался после удаления: %q", noGroup)
	}
	if Extract(noGroup, SegmentPersonal) != "личное" {
		t.Fatalf("удаление группового задело личное: %q", noGroup)
	}

	empty := Merge(Merge(desc, SegmentGroup, ""), SegmentPersonal, "")
	if empty != "заметки" {
		t.Fatalf("после удаления обоих сегментов должны остаться только заметки: %q", empty)
	}
}

// Пример из постановки: личное ДЗ поверх чистого описания, затем групповое.
// Групповой сегмент в сериализации всегда идёт первым.
func TestMergeOrderExample(t *testing.T) {
	desc := "Lecturer: Smith"

	desc = Merge(desc, SegmentPersonal, "read ch.3")
	want := "Lecturer: Smith\n\n" + PersonalTag + "\nread ch.3"
	if desc != want {
		t.Fatalf("после личного слияния:\n%q\nожидали:\n%q", desc, want)
	}

	desc = Merge(desc, SegmentGroup, "quiz Friday")
	want = "Lecturer: Smith\n\n" + GroupTag + "\nquiz Friday\n\n" + PersonalTag + "\nread ch.3"
	if desc != want {
		t.Fatalf("после группового слияния:\n%q\nожидали:\n%q", desc, want)
	}
}

func TestSplitMalformedDegradesToTeacherNotes(t *testing.T) {
	raw := "какой-то текст без тегов\nещё строка"
	p := Split(raw)
	if p.TeacherNotes != raw || p.Group != "" || p.Personal != "" {
		t.Fatalf("неразобранный остаток должен уйти в заметки: %+v", p)
	}
}

func TestExtract(t *testing.T) {
	desc := Parts{TeacherNotes: "заметки", Group: "групповое\nв две строки", Personal: "личное"}.Render()

	if got := Extract(desc, SegmentGroup); got != "групповое\nв две строки" {
		t.Errorf("Extract(group) = %q", got)
	}
	if got := Extract(desc, SegmentPersonal); got != "личное" {
		t.Errorf("Extract(personal) = %q", got)
	}
	if got := Extract("без тегов", SegmentGroup); got != "" {
		t.Errorf("Extract по описанию без тегов = %q, ожидали пусто", got)
	}
}

func TestAttachDedupByFileID(t *testing.T) {
	e := &EventContent{Summary: "Физика (611)"}
	att := Attachment{FileID: "abc", Title: "задание.pdf", MimeType: "application/pdf", FileURL: "https://drive/abc"}

	e.Attach(att)
	e.Attach(att)
	e.Attach(Attachment{FileID: "abc", Title: "другое имя.pdf"})

	if len(e.Attachments) != 1 {
		t.Fatalf("ожидали одно вложение после дедупликации, получили %d", len(e.Attachments))
	}
	if e.Attachments[0].Title != "задание.pdf" {
		t.Fatalf("дедуп должен оставлять первое вложение: %+v", e.Attachments[0])
	}
}

func TestTitleTagInvariant(t *testing.T) {
	base := func() *EventContent {
		return &EventContent{Summary: "Физика (611)", Description: "Лектор: Козлов"}
	}

	// тег появляется от каждого из трёх условий независимо
	e := base()
	e.SetSegment(SegmentGroup, "групповое")
	if !strings.HasSuffix(e.Summary, TitleTag) {
		t.Errorf("групповое ДЗ не добавило тег заголовка: %q", e.Summary)
	}

	e = base()
	e.SetSegment(SegmentPersonal, "личное")
	if !strings.HasSuffix(e.Summary, TitleTag) {
		t.Errorf("личное ДЗ не добавило тег заголовка: %q", e.Summary)
	}

	e = base()
	e.Attach(Attachment{FileID: "f1", Title: "файл.pdf"})
	if !strings.HasSuffix(e.Summary, TitleTag) {
		t.Errorf("вложение не добавило тег заголовка: %q", e.Summary)
	}

	// тег снимается только когда не осталось ни одного условия
	e = base()
	e.SetSegment(SegmentGroup, "групповое")
	e.Attach(Attachment{FileID: "f1", Title: "файл.pdf"})
	e.SetSegment(SegmentGroup, "")
	if !strings.HasSuffix(e.Summary, TitleTag) {
		t.Errorf("тег снят, хотя осталось вложение: %q", e.Summary)
	}
	e.RemoveAttachments()
	if strings.HasSuffix(e.Summary, TitleTag) {
		t.Errorf("тег не снят с пустого события: %q", e.Summary)
	}
	if e.Summary != "Физика (611)" {
		t.Errorf("заголовок после снятия тега: %q", e.Summary)
	}

	// повторное применение не плодит теги
	e = base()
	e.SetSegment(SegmentPersonal, "раз")
	e.SetSegment(SegmentPersonal, "два")
	if strings.Count(e.Summary, TitleTag) != 1 {
		t.Errorf("тег задублировался: %q", e.Summary)
	}
}

func TestSubjectFromSummary(t *testing.T) {
	cases := []struct {
		summary string
		want    string
	}{
		{"Физика (611)", "Физика"},
		{"Физика (611)" + TitleTag, "Физика"},
		{"Математический анализ (324)", "Математический анализ"},
		{"Консультация", "Консультация"},
		{"", ""},
	}
	for _, c := range cases {
		if got := SubjectFromSummary(c.summary); got != c.want {
			t.Errorf("SubjectFromSummary(%q) = %q, ожидали %q", c.summary, got, c.want)
		}
	}
}

func TestContainsTag(t *testing.T) {
	if !ContainsTag("текст с " + GroupTag + " внутри") {
		t.Error("групповой тег внутри текста не распознан")
	}
	if !ContainsTag(PersonalTag) {
		t.Error("личный тег не распознан")
	}
	if ContainsTag("обычный текст ДЗ") {
		t.Error("ложное срабатывание на обычном тексте")
	}
}
