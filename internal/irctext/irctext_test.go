package irctext

import (
	"strings"
	"testing"
)

func TestWrappersEmptyInEmptyOut(t *testing.T) {
	funcs := map[string]func(string) string{
		"Repo":      Repo,
		"Branch":    Branch,
		"Tag":       Tag,
		"User":      User,
		"Hash":      Hash,
		"URL":       URL,
		"Dangerous": Dangerous,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if got := fn(""); got != "" {
				t.Errorf("%s(\"\") = %q, want empty", name, got)
			}
		})
	}
}

func TestWrappersPreserveIdentifier(t *testing.T) {
	// Stripping the added markup must recover the original text.
	rendered := Branch("feature/x")
	stripped := strings.TrimSuffix(strings.TrimPrefix(rendered, colorBranch), reset)
	if stripped != "feature/x" {
		t.Errorf("stripped branch = %q, want feature/x", stripped)
	}

	rendered = Hash("abc1234")
	if !strings.Contains(rendered, "abc1234") {
		t.Errorf("Hash output %q does not contain the hash", rendered)
	}
	if rendered == "abc1234" {
		t.Error("Hash output carries no markup")
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 new commits"},
		{1, "1 new commit"},
		{2, "2 new commits"},
		{11, "11 new commits"},
	}

	for _, tt := range tests {
		if got := Number(tt.n, "new commit", "new commits"); got != tt.want {
			t.Errorf("Number(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrettify(t *testing.T) {
	long := strings.Repeat("x", 80)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "looks good to me", "looks good to me"},
		{"surrounding whitespace", "  looks good  ", "looks good"},
		{"multiline", "first line\nsecond line", "first line..."},
		{"crlf", "first line\r\nsecond line", "first line..."},

		// A trailing blank line after trimming is gone, so no ellipsis;
		// an interior newline always gets one.
		{"interior blank line", "first\n\nsecond", "first..."},
		{"too long", long, strings.Repeat("x", 72) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prettify(tt.in); got != tt.want {
				t.Errorf("Prettify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
