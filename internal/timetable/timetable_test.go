package timetable

import (
	"testing"
	"time"

	"homework-bot/internal/models"
)

func TestParityFor(t *testing.T) {
	// 1 сентября 2025 понедельник, первая учебная неделя нечётная
	cases := []struct {
		date time.Time
		want models.WeekParity
	}{
		{time.Date(2025, time.September, 1, 0, 0, 0, 0, Location), models.OddWeek},
		{time.Date(2025, time.September, 4, 0, 0, 0, 0, Location), models.OddWeek},
		{time.Date(2025, time.September, 7, 23, 0, 0, 0, Location), models.OddWeek},
		{time.Date(2025, time.September, 8, 0, 0, 0, 0, Location), models.EvenWeek},
		{time.Date(2025, time.September, 15, 0, 0, 0, 0, Location), models.OddWeek},
		// весна относится к учебному году, начавшемуся прошлой осенью
		{time.Date(2026, time.February, 2, 0, 0, 0, 0, Location), models.OddWeek},
		{time.Date(2026, time.February, 9, 0, 0, 0, 0, Location), models.EvenWeek},
	}
	for _, c := range cases {
		if got := ParityFor(c.date); got != c.want {
			t.Errorf("ParityFor(%s) = %v, ожидалось %v", c.date.Format("02.01.2006"), got, c.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	// среда 3 сентября 2025, понедельник той недели 1 сентября
	wed := time.Date(2025, time.September, 3, 14, 30, 0, 0, Location)
	got := WeekStart(wed)
	want := time.Date(2025, time.September, 1, 0, 0, 0, 0, Location)
	if !got.Equal(want) {
		t.Errorf("WeekStart вернул %v, ожидалось %v", got, want)
	}

	// воскресенье относится к своей неделе, а не к следующей
	sun := time.Date(2025, time.September, 7, 10, 0, 0, 0, Location)
	if got := WeekStart(sun); !got.Equal(want) {
		t.Errorf("WeekStart для воскресенья вернул %v, ожидалось %v", got, want)
	}
}

func TestSubjects(t *testing.T) {
	subjects := Subjects()
	if len(subjects) != 7 {
		t.Fatalf("ожидалось 7 предметов, получено %d: %v", len(subjects), subjects)
	}
	seen := make(map[string]bool)
	for i, s := range subjects {
		if seen[s] {
			t.Errorf("предмет %q встречается дважды", s)
		}
		seen[s] = true
		if i > 0 && subjects[i-1] > s {
			t.Errorf("список не отсортирован: %q перед %q", subjects[i-1], s)
		}
	}
}

func TestHomeworkSubjects(t *testing.T) {
	subjects := HomeworkSubjects()
	if len(subjects) != len(Subjects())+1 {
		t.Fatalf("ожидался дополнительный пункт для лабораторной, получено %v", subjects)
	}
	found := false
	for _, s := range subjects {
		if s == LabSubjectOption {
			found = true
		}
	}
	if !found {
		t.Errorf("пункт %q отсутствует в меню ДЗ", LabSubjectOption)
	}
}

func TestResolveSubjectOption(t *testing.T) {
	subject, classType := ResolveSubjectOption("Физика")
	if subject != "Физика" || classType != models.Seminar {
		t.Errorf("обычный предмет: получено (%q, %v)", subject, classType)
	}

	subject, classType = ResolveSubjectOption(LabSubjectOption)
	if subject != "Теоретические основы информатики" || classType != models.Lab {
		t.Errorf("пункт лабораторной: получено (%q, %v)", subject, classType)
	}
}

func TestIsKnownSubject(t *testing.T) {
	if !IsKnownSubject("Математический анализ") {
		t.Error("предмет из расписания не распознан")
	}
	if IsKnownSubject("Философия") {
		t.Error("чужой предмет не должен распознаваться")
	}
}

func TestClockAt(t *testing.T) {
	day := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	got, err := ClockAt(day, "8:30")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	want := time.Date(2025, time.September, 1, 8, 30, 0, 0, Location)
	if !got.Equal(want) {
		t.Errorf("ClockAt вернул %v, ожидалось %v", got, want)
	}

	for _, bad := range []string{"830", "x:30", "8:xx", ""} {
		if _, err := ClockAt(day, bad); err == nil {
			t.Errorf("время %q должно отклоняться", bad)
		}
	}
}

func TestEntriesFor(t *testing.T) {
	// вторник нечётной недели: лекция по информатике и семинар по языку
	oddTue := time.Date(2025, time.September, 2, 0, 0, 0, 0, Location)
	entries := EntriesFor(oddTue)
	if len(entries) != 2 {
		t.Fatalf("ожидалось 2 занятия, получено %d", len(entries))
	}
	if entries[0].Type != models.Lecture || entries[0].Subject != "Теоретические основы информатики" {
		t.Errorf("первое занятие: %+v", entries[0])
	}

	// вторник чётной недели: вместо лекции лабораторная
	evenTue := time.Date(2025, time.September, 9, 0, 0, 0, 0, Location)
	entries = EntriesFor(evenTue)
	hasLab := false
	for _, e := range entries {
		if e.Type == models.Lab {
			hasLab = true
		}
	}
	if !hasLab {
		t.Errorf("на чётной неделе ожидалась лабораторная, получено %+v", entries)
	}
}

func TestColorMapBijective(t *testing.T) {
	seen := make(map[string]models.LessonType)
	for lessonType, color := range ColorMap {
		if other, ok := seen[color]; ok {
			t.Errorf("цвет %s назначен и %v, и %v", color, other, lessonType)
		}
		seen[color] = lessonType
	}
}
