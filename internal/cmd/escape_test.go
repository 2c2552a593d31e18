package cmd

import "testing"

func TestReplaceEscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "plain text", "plain text"},
		{"newline", `a\nb`, "a\nb"},
		{"all supported", `\f\n\r\t\v\\`, "\f\n\r\t\v\\"},
		{"unknown escape kept", `a\qb`, `a\qb`},
		{"trailing backslash kept", `end\`, `end\`},
		{"escaped backslash before n", `\\n`, `\n`},
		{"unicode around escapes", `héllo\twörld`, "héllo\twörld"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceEscapeSequences(tt.input); got != tt.want {
				t.Errorf("ReplaceEscapeSequences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
