package summary

import (
	"reflect"
	"testing"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"45", []int{45}},
		{"45, 48-51", []int{45, 48, 49, 50, 51}},
		{"3,1,2", []int{1, 2, 3}},
		{"5, 5, 4-6", []int{4, 5, 6}},
		{" 7 - 9 ", []int{7, 8, 9}},
	}

	for _, tt := range tests {
		got, err := ParsePages(tt.input)
		if err != nil {
			t.Errorf("ParsePages(%q): неожиданная ошибка %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePages(%q) = %v, ожидалось %v", tt.input, got, tt.want)
		}
	}
}

func TestParsePagesRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"0",
		"-3",
		"10-5",
		"1-100",
		"4;7",
	} {
		if _, err := ParsePages(input); err == nil {
			t.Errorf("ParsePages(%q) должен вернуть ошибку", input)
		}
	}
}

func TestPagesLabel(t *testing.T) {
	if got := PagesLabel([]int{4, 5, 6}); got != "4, 5, 6" {
		t.Errorf("PagesLabel = %q", got)
	}
}
