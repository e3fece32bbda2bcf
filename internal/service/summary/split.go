package summary

import (
	"strings"
	"unicode/utf8"
)

// ChunkSize с запасом меньше телеграмного лимита в 4096 символов
const ChunkSize = 4000

// SplitMessage делит длинный текст на части не длиннее limit. Разрез
// идёт по границе абзаца, строки или слова, чтобы не рвать слова.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut == -1 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut == -1 {
			cut = strings.LastIndex(text[:limit], " ")
		}
		if cut <= 0 {
			// Жёсткий разрез: отступаем к началу руны, чтобы не порвать UTF-8
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], " \n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
