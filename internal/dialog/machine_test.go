package dialog

import "testing"

const (
	stA State = "a"
	stB State = "b"
)

func TestDispatchWalksStates(t *testing.T) {
	m := New()

	var got []string
	m.OnCallback(StateNone, "go", func(s *Session, ev Event) State {
		got = append(got, "start")
		return stA
	})
	m.OnText(stA, func(s *Session, ev Event) State {
		got = append(got, "text:"+ev.Text)
		s.Ctx.Subject = ev.Text
		return stB
	})
	m.OnCallback(stB, "subj_", func(s *Session, ev Event) State {
		got = append(got, "pick:"+ev.Data)
		return StateNone
	})

	if !m.Dispatch(Event{Kind: KindCallback, ChatID: 1, Data: "go"}) {
		t.Fatal("входное событие не обработано")
	}
	if !m.Dispatch(Event{Kind: KindText, ChatID: 1, Text: "Физика"}) {
		t.Fatal("текст не обработан")
	}
	if m.Session(1).Ctx.Subject != "Физика" {
		t.Fatal("контекст не накопил предмет")
	}
	if !m.Dispatch(Event{Kind: KindCallback, ChatID: 1, Data: "subj_2"}) {
		t.Fatal("callback с префиксом не обработан")
	}

	want := []string{"start", "text:Физика", "pick:subj_2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("порядок шагов %v, ожидали %v", got, want)
		}
	}

	// терминальное состояние очищает контекст
	if m.Active(1) || m.Session(1).Ctx.Subject != "" {
		t.Fatal("после терминала сессия должна быть чистой")
	}
}

func TestDispatchIgnoresWrongKindAndPrefix(t *testing.T) {
	m := New()
	m.OnCallback(stA, "subj_", func(s *Session, ev Event) State { return StateNone })

	s := m.Session(7)
	s.State = stA

	if m.Dispatch(Event{Kind: KindText, ChatID: 7, Text: "subj_1"}) {
		t.Error("текст не должен матчить callback-правило")
	}
	if m.Dispatch(Event{Kind: KindCallback, ChatID: 7, Data: "other_1"}) {
		t.Error("чужой префикс не должен матчиться")
	}
	if !m.Dispatch(Event{Kind: KindCallback, ChatID: 7, Data: "subj_1"}) {
		t.Error("свой префикс обязан матчиться")
	}
}

func TestExactCallbackDoesNotMatchPrefix(t *testing.T) {
	m := New()
	m.OnCallback(stA, "find_next_class", func(s *Session, ev Event) State { return StateNone })

	s := m.Session(3)
	s.State = stA
	if m.Dispatch(Event{Kind: KindCallback, ChatID: 3, Data: "find_next_class_group"}) {
		t.Error("точное имя кнопки не должно работать как префикс")
	}
	if !m.Dispatch(Event{Kind: KindCallback, ChatID: 3, Data: "find_next_class"}) {
		t.Error("точное имя кнопки должно матчиться")
	}
}

func TestFallbackAbortsAnyState(t *testing.T) {
	m := New()
	m.OnText(stA, func(s *Session, ev Event) State { return stA })
	m.Fallback(KindCallback, "main_menu", func(s *Session, ev Event) State {
		return StateNone
	})

	s := m.Session(5)
	s.State = stA
	s.Ctx.HomeworkText = "недописанное"

	if !m.Dispatch(Event{Kind: KindCallback, ChatID: 5, Data: "main_menu"}) {
		t.Fatal("фолбэк не сработал")
	}
	if m.Active(5) {
		t.Fatal("фолбэк должен завершать диалог")
	}
	if s.Ctx.HomeworkText != "" {
		t.Fatal("фолбэк должен очищать контекст без сохранения")
	}
}

func TestStateRuleWinsOverFallback(t *testing.T) {
	m := New()
	hit := ""
	m.OnCallback(stA, "main_menu", func(s *Session, ev Event) State {
		hit = "state"
		return StateNone
	})
	m.Fallback(KindCallback, "main_menu", func(s *Session, ev Event) State {
		hit = "fallback"
		return StateNone
	})

	s := m.Session(9)
	s.State = stA
	m.Dispatch(Event{Kind: KindCallback, ChatID: 9, Data: "main_menu"})
	if hit != "state" {
		t.Fatalf("правило состояния должно иметь приоритет, сработал %q", hit)
	}
}

func TestSessionsIndependentPerChat(t *testing.T) {
	m := New()
	m.OnCallback(StateNone, "go", func(s *Session, ev Event) State { return stA })

	m.Dispatch(Event{Kind: KindCallback, ChatID: 1, Data: "go"})
	if m.Active(2) {
		t.Fatal("диалог одного чата не должен влиять на другой")
	}
	if !m.Active(1) {
		t.Fatal("диалог первого чата потерян")
	}
}
