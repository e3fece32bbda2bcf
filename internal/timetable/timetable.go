package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"homework-bot/internal/models"
)

// ColorMap отображает тип занятия в colorId Google Calendar.
// Таблица обязана быть биективной: поиск ДЗ сопоставляет события по цвету.
var ColorMap = map[models.LessonType]string{
	models.Lecture: "9",  // синий
	models.Seminar: "11", // красный
	models.Lab:     "10", // зелёный
}

// LabSubjectOption отдельный пункт меню для лабораторных работ
const LabSubjectOption = "Лабораторная: Теоретические основы информатики"

const labSubject = "Теоретические основы информатики"

// Location часовой пояс, в котором идут занятия
var Location = time.FixedZone("MSK", 3*60*60)

// SemesterEnd последняя дата, до которой генерируется расписание
var SemesterEnd = time.Date(2025, time.December, 31, 0, 0, 0, 0, Location)

// Entries статическое расписание семестра
var Entries = []models.ScheduleEntry{
	{Subject: "Математический анализ", Room: "501", Teacher: "Иванова Е.П.", Type: models.Lecture, Weekday: time.Monday, Parity: models.OddWeek, Start: "8:30", End: "10:05"},
	{Subject: "Математический анализ", Room: "501", Teacher: "Иванова Е.П.", Type: models.Lecture, Weekday: time.Monday, Parity: models.EvenWeek, Start: "8:30", End: "10:05"},
	{Subject: "Математический анализ", Room: "324", Teacher: "Петров С.Н.", Type: models.Seminar, Weekday: time.Monday, Parity: models.OddWeek, Start: "10:15", End: "11:50"},
	{Subject: "Аналитическая геометрия", Room: "220", Teacher: "Соколова М.А.", Type: models.Seminar, Weekday: time.Monday, Parity: models.EvenWeek, Start: "10:15", End: "11:50"},
	{Subject: "Теоретические основы информатики", Room: "830", Teacher: "Кузнецов Д.В.", Type: models.Lecture, Weekday: time.Tuesday, Parity: models.OddWeek, Start: "8:30", End: "10:05"},
	{Subject: "Теоретические основы информатики", Room: "829", Teacher: "Кузнецов Д.В.", Type: models.Lab, Weekday: time.Tuesday, Parity: models.EvenWeek, Start: "8:30", End: "11:50"},
	{Subject: "Иностранный язык", Room: "420", Teacher: "Морозова О.И.", Type: models.Seminar, Weekday: time.Tuesday, Parity: models.OddWeek, Start: "10:15", End: "11:50"},
	{Subject: "Иностранный язык", Room: "420", Teacher: "Морозова О.И.", Type: models.Seminar, Weekday: time.Tuesday, Parity: models.EvenWeek, Start: "12:00", End: "13:35"},
	{Subject: "Аналитическая геометрия", Room: "501", Teacher: "Волков А.А.", Type: models.Lecture, Weekday: time.Wednesday, Parity: models.OddWeek, Start: "8:30", End: "10:05"},
	{Subject: "Аналитическая геометрия", Room: "501", Teacher: "Волков А.А.", Type: models.Lecture, Weekday: time.Wednesday, Parity: models.EvenWeek, Start: "8:30", End: "10:05"},
	{Subject: "История России", Room: "345", Teacher: "Лебедева Н.С.", Type: models.Seminar, Weekday: time.Wednesday, Parity: models.OddWeek, Start: "10:15", End: "11:50"},
	{Subject: "Теоретические основы информатики", Room: "829", Teacher: "Смирнов П.К.", Type: models.Seminar, Weekday: time.Wednesday, Parity: models.EvenWeek, Start: "10:15", End: "11:50"},
	{Subject: "Физика", Room: "611", Teacher: "Козлов В.М.", Type: models.Lecture, Weekday: time.Thursday, Parity: models.OddWeek, Start: "8:30", End: "10:05"},
	{Subject: "Физика", Room: "611", Teacher: "Козлов В.М.", Type: models.Lecture, Weekday: time.Thursday, Parity: models.EvenWeek, Start: "8:30", End: "10:05"},
	{Subject: "Физика", Room: "613", Teacher: "Новикова Т.Л.", Type: models.Seminar, Weekday: time.Thursday, Parity: models.EvenWeek, Start: "10:15", End: "11:50"},
	{Subject: "Инженерная графика", Room: "383", Teacher: "Фёдоров И.Г.", Type: models.Seminar, Weekday: time.Friday, Parity: models.OddWeek, Start: "8:30", End: "10:05"},
	{Subject: "Математический анализ", Room: "324", Teacher: "Петров С.Н.", Type: models.Seminar, Weekday: time.Friday, Parity: models.EvenWeek, Start: "8:30", End: "10:05"},
	{Subject: "История России", Room: "501", Teacher: "Лебедева Н.С.", Type: models.Lecture, Weekday: time.Friday, Parity: models.OddWeek, Start: "10:15", End: "11:50"},
	{Subject: "Инженерная графика", Room: "383", Teacher: "Фёдоров И.Г.", Type: models.Seminar, Weekday: time.Friday, Parity: models.EvenWeek, Start: "10:15", End: "11:50"},
}

// Subjects возвращает отсортированный список предметов без дубликатов
func Subjects() []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, e := range Entries {
		if !seen[e.Subject] {
			seen[e.Subject] = true
			subjects = append(subjects, e.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects
}

// HomeworkSubjects список предметов для меню ДЗ: к обычным предметам
// добавляется отдельный пункт для лабораторной
func HomeworkSubjects() []string {
	subjects := Subjects()
	for _, s := range subjects {
		if s == labSubject {
			subjects = append(subjects, LabSubjectOption)
			sort.Strings(subjects)
			break
		}
	}
	return subjects
}

// ResolveSubjectOption переводит пункт меню в пару (предмет, тип занятия).
// Обычный предмет означает семинар, спец-пункт лабораторную.
func ResolveSubjectOption(option string) (string, models.LessonType) {
	if option == LabSubjectOption {
		return labSubject, models.Lab
	}
	return option, models.Seminar
}

// IsKnownSubject true, если предмет есть в расписании бота
func IsKnownSubject(subject string) bool {
	for _, e := range Entries {
		if e.Subject == subject {
			return true
		}
	}
	return false
}

// ParityFor чётность учебной недели для даты. Отсчёт от понедельника
// недели, содержащей 1 сентября текущего учебного года.
func ParityFor(date time.Time) models.WeekParity {
	year := date.Year()
	if date.Month() < time.September {
		year--
	}
	sept1 := time.Date(year, time.September, 1, 0, 0, 0, 0, date.Location())
	semesterMonday := mondayOf(sept1)
	weeks := int(mondayOf(date).Sub(semesterMonday).Hours()) / (24 * 7)
	if weeks%2 == 0 {
		return models.OddWeek
	}
	return models.EvenWeek
}

func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // воскресенье
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart понедельник недели, содержащей t
func WeekStart(t time.Time) time.Time {
	return mondayOf(t)
}

// ClockAt собирает момент времени из даты и времени вида "8:30"
func ClockAt(day time.Time, clock string) (time.Time, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("некорректное время %q", clock)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректное время %q", clock)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректное время %q", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, Location), nil
}

// EntriesFor занятия на конкретную дату с учётом чётности недели
func EntriesFor(date time.Time) []models.ScheduleEntry {
	parity := ParityFor(date)
	var result []models.ScheduleEntry
	for _, e := range Entries {
		if e.Weekday == date.Weekday() && e.Parity == parity {
			result = append(result, e)
		}
	}
	return result
}
