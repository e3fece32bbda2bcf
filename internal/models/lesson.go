package models

import "time"

// LessonType тип занятия, через таблицу цветов отображается в colorId календаря
type LessonType string

const (
	Lecture LessonType = "Лекция"
	Seminar LessonType = "Семинар"
	Lab     LessonType = "Лабораторные работы"
)

// WeekParity чётность учебной недели
type WeekParity string

const (
	OddWeek  WeekParity = "Нечетная неделя"
	EvenWeek WeekParity = "Четная неделя"
)

// ScheduleEntry шаблон занятия из статического расписания. Не мутируется,
// используется только для генерации событий календаря.
type ScheduleEntry struct {
	Subject string
	Room    string
	Teacher string
	Type    LessonType
	Weekday time.Weekday
	Parity  WeekParity
	Start   string // "HH:MM"
	End     string // "HH:MM"
}
