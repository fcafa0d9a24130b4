package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "flight",
			want:  "flight",
		},
		{
			name:  "collapses spaces",
			input: "book   the    flight",
			want:  "book the flight",
		},
		{
			name:  "collapses newlines",
			input: "book\n\n the\tflight",
			want:  "book the flight",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "a\r\nb", want: "a\nb"},
		{name: "cr", input: "a\rb", want: "a\nb"},
		{name: "mixed", input: "a\r\nb\rc\n", want: "a\nb\nc\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("done\n\r\n"); got != "done" {
		t.Fatalf("expected %q, got %q", "done", got)
	}
	if got := TrimTrailingNewlines("\nkeep"); got != "\nkeep" {
		t.Fatalf("expected leading newline kept, got %q", got)
	}
}

func TestIndentBlock(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		spaces int
		want   string
	}{
		{
			name:   "no indent",
			input:  "line",
			spaces: 0,
			want:   "line",
		},
		{
			name:   "single line",
			input:  "line",
			spaces: 2,
			want:   "  line",
		},
		{
			name:   "multiline",
			input:  "one\n\ntwo",
			spaces: 1,
			want:   " one\n \n two",
		},
		{
			name:   "empty",
			input:  "",
			spaces: 3,
			want:   "   ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IndentBlock(tc.input, tc.spaces)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
