package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim", input: "  run  ", want: "run"},
		{name: "case", input: "Run", want: "run"},
		{name: "phrasal verb spacing", input: "look   after", want: "look after"},
		{name: "tab inside", input: "look\tafter", want: "look after"},
		{name: "diacritics kept", input: "Café", want: "café"},
		{name: "hyphen kept", input: "well-known", want: "well-known"},
		{name: "apostrophe kept", input: "O'Clock", want: "o'clock"},
		{name: "embedded pos", input: " Run (Verb) ", want: "run (verb)"},
		{name: "empty", input: "", want: ""},
		{name: "blank", input: " \t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
