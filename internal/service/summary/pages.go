package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxPages предохранитель от запроса на сотню страниц разом: каждая
// страница уходит в GPT картинкой и стоит токенов.
const maxPages = 15

// ParsePages разбирает ввод вида "45, 48-51" в отсортированный список
// номеров страниц без дубликатов.
func ParsePages(input string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, ok := strings.Cut(part, "-"); ok {
			start, err := parsePage(from)
			if err != nil {
				return nil, err
			}
			end, err := parsePage(to)
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("начало диапазона %d-%d больше конца", start, end)
			}
			for p := start; p <= end; p++ {
				seen[p] = true
			}
			continue
		}

		p, err := parsePage(part)
		if err != nil {
			return nil, err
		}
		seen[p] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("не указано ни одной страницы")
	}
	if len(seen) > maxPages {
		return nil, fmt.Errorf("слишком много страниц: %d, максимум %d", len(seen), maxPages)
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

func parsePage(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q не похоже на номер страницы", strings.TrimSpace(s))
	}
	if p < 1 {
		return 0, fmt.Errorf("номер страницы должен быть положительным, получено %d", p)
	}
	return p, nil
}

// PagesLabel строковое представление списка страниц для сообщений
// и журнала.
func PagesLabel(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
