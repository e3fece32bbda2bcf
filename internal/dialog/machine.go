// Package dialog реализует конечный автомат диалогов в виде явной
// таблицы переходов: состоянию соответствует список правил (вид события,
// префикс, обработчик). Пакет не зависит от телеграма: события
// синтезируются из любых апдейтов, в том числе тестовым окружением.
package dialog

import (
	"strings"
	"sync"
)

// State имя состояния диалога. Пустое значение терминально.
type State string

const StateNone State = ""

// Kind вид входящего события
type Kind int

const (
	KindCallback Kind = iota // нажатие inline-кнопки
	KindText                 // свободный текст
	KindDocument             // присланный файл
)

// Event одно событие пользователя, уже освобождённое от деталей транспорта
type Event struct {
	Kind      Kind
	ChatID    int64
	UserID    int64
	MessageID int
	Data      string // callback data кнопки
	Text      string
	FileName  string
	FileBytes []byte
}

// Handler шаг мастера: обрабатывает событие и возвращает следующее
// состояние. StateNone завершает диалог и очищает контекст.
type Handler func(s *Session, ev Event) State

type rule struct {
	kind    Kind
	prefix  string // для callback: точное имя или префикс вида 'xxx_'; пусто значит любое
	handler Handler
}

func (r rule) matches(ev Event) bool {
	if r.kind != ev.Kind {
		return false
	}
	if ev.Kind == KindCallback && r.prefix != "" {
		if strings.HasSuffix(r.prefix, "_") {
			return strings.HasPrefix(ev.Data, r.prefix)
		}
		return ev.Data == r.prefix
	}
	return true
}

// Session состояние одного чата. Шаги одного диалога выполняются строго
// последовательно: на время обработки события сессия заперта.
type Session struct {
	mu    sync.Mutex
	State State
	Ctx   *Context
}

// Machine таблица переходов плюс реестр сессий
type Machine struct {
	mu        sync.RWMutex
	rules     map[State][]rule
	fallbacks []rule
	sessions  map[int64]*Session
}

func New() *Machine {
	return &Machine{
		rules:    make(map[State][]rule),
		sessions: make(map[int64]*Session),
	}
}

// OnCallback регистрирует обработчик нажатия кнопки в состоянии state.
// Префикс, оканчивающийся на '_', матчится как префикс callback data.
func (m *Machine) OnCallback(state State, prefix string, h Handler) {
	m.add(state, rule{kind: KindCallback, prefix: prefix, handler: h})
}

// OnText регистрирует обработчик свободного текста в состоянии state
func (m *Machine) OnText(state State, h Handler) {
	m.add(state, rule{kind: KindText, handler: h})
}

// OnDocument регистрирует обработчик присланного файла в состоянии state
func (m *Machine) OnDocument(state State, h Handler) {
	m.add(state, rule{kind: KindDocument, handler: h})
}

// Fallback глобальное правило: срабатывает в любом состоянии, когда
// правила состояния не подошли. Используется для /start и «в главное меню».
func (m *Machine) Fallback(kind Kind, prefix string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, rule{kind: kind, prefix: prefix, handler: h})
}

func (m *Machine) add(state State, r rule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[state] = append(m.rules[state], r)
}

// Session возвращает сессию чата, создавая её при необходимости
func (m *Machine) Session(chatID int64) *Session {
	m.mu.RLock()
	s, ok := m.sessions[chatID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[chatID]; ok {
		return s
	}
	s = &Session{Ctx: &Context{}}
	m.sessions[chatID] = s
	return s
}

// Reset сбрасывает диалог чата в исходное состояние
func (m *Machine) Reset(chatID int64) {
	s := m.Session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = StateNone
	s.Ctx.Reset()
}

// Dispatch прогоняет событие через таблицу. Возвращает false, если ни
// правила текущего состояния, ни глобальные не подошли.
func (m *Machine) Dispatch(ev Event) bool {
	s := m.Session(ev.ChatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	m.mu.RLock()
	candidates := append([]rule{}, m.rules[s.State]...)
	candidates = append(candidates, m.fallbacks...)
	m.mu.RUnlock()

	for _, r := range candidates {
		if !r.matches(ev) {
			continue
		}
		next := r.handler(s, ev)
		s.State = next
		if next == StateNone {
			s.Ctx.Reset()
		}
		return true
	}
	return false
}

// Active true, если в чате идёт незавершённый диалог
func (m *Machine) Active(chatID int64) bool {
	s := m.Session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State != StateNone
}
