package summary

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShortTextUntouched(t *testing.T) {
	got := SplitMessage("короткий текст", 100)
	if len(got) != 1 || got[0] != "короткий текст" {
		t.Errorf("короткий текст не должен делиться: %v", got)
	}
}

func TestSplitMessagePrefersParagraphs(t *testing.T) {
	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 50)
	got := SplitMessage(text, 60)

	if len(got) != 2 {
		t.Fatalf("ожидалось 2 части, получено %d", len(got))
	}
	if got[0] != strings.Repeat("a", 50) {
		t.Errorf("первая часть должна кончаться на границе абзаца: %q", got[0])
	}
	if got[1] != strings.Repeat("b", 50) {
		t.Errorf("вторая часть: %q", got[1])
	}
}

func TestSplitMessageFallsBackToWords(t *testing.T) {
	text := strings.Repeat("слово ", 100)
	for _, chunk := range SplitMessage(text, 80) {
		if len(chunk) > 80 {
			t.Errorf("часть длиннее лимита: %d", len(chunk))
		}
		if strings.Contains(chunk, "слов ") {
			t.Errorf("слово разорвано: %q", chunk)
		}
	}
}

func TestSplitMessageHardCutWithoutSpaces(t *testing.T) {
	text := strings.Repeat("x", 250)
	got := SplitMessage(text, 100)

	var total int
	for _, chunk := range got {
		if len(chunk) > 100 {
			t.Errorf("часть длиннее лимита: %d", len(chunk))
		}
		total += len(chunk)
	}
	if total != 250 {
		t.Errorf("при жёстком разрезе текст должен сохраниться целиком, получено %d символов", total)
	}
}

func TestSplitMessageHardCutKeepsRunesWhole(t *testing.T) {
	// сплошная кириллица без пробелов: двухбайтовые руны не должны рваться
	text := strings.Repeat("ы", 50)
	got := SplitMessage(text, 21)

	var all strings.Builder
	for _, chunk := range got {
		if len(chunk) > 21 {
			t.Errorf("часть длиннее лимита: %d байт", len(chunk))
		}
		if !utf8.ValidString(chunk) {
			t.Errorf("руна разорвана посередине: %q", chunk)
		}
		all.WriteString(chunk)
	}
	if all.String() != text {
		t.Error("при жёстком разрезе текст должен сохраниться целиком")
	}
}
