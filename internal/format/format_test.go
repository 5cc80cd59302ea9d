package format

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gitirc/internal/irctext"
	"gitirc/internal/testutil"
)

func TestRenderUnsupportedKind(t *testing.T) {
	lines, err := Render("watch", map[string]interface{}{}, nil)

	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("err = %v, want ErrUnsupportedKind", err)
	}
	if lines != nil {
		t.Errorf("lines = %v, want nil", lines)
	}
}

func TestSupportedKinds(t *testing.T) {
	for _, kind := range []string{"push", "pull_request_review_comment", "issues", "pull_request"} {
		if !Supported(kind) {
			t.Errorf("Supported(%q) = false, want true", kind)
		}
	}
	if Supported("watch") {
		t.Error("Supported(watch) = true, want false")
	}

	kinds := Kinds()
	if len(kinds) < 4 {
		t.Errorf("Kinds() returned %d kinds, want at least 4", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("Kinds() not sorted: %v", kinds)
		}
	}
}

func TestRenderWithNilShortener(t *testing.T) {
	p := testutil.ReviewCommentPayload("alice", "nice", 7)

	lines, err := Render("pull_request_review_comment", p, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(lines[0], "https://github.com/example/gitirc/pull/7#discussion_r1") {
		t.Errorf("line %q should carry the original URL unshortened", lines[0])
	}
}

func TestReviewCommentFormatter(t *testing.T) {
	p := testutil.ReviewCommentPayload("alice", "looks good\nbut rename this", 7)
	sh := &testutil.RecordingShortener{Prefix: "https://short/"}

	lines, err := Render("pull_request_review_comment", p, sh)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("rendered %d lines, want 1", len(lines))
	}

	want := fmt.Sprintf("[%s] %s commented on pull request #7 %s: looks good...: %s",
		irctext.Repo("gitirc"), irctext.User("alice"), irctext.Hash("abcdef0"),
		irctext.URL("https://short/https://github.com/example/gitirc/pull/7#discussion_r1"))
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
}

func issuesPayload(action string) map[string]interface{} {
	return map[string]interface{}{
		"action": action,
		"repository": map[string]interface{}{
			"name": "gitirc",
		},
		"sender": map[string]interface{}{
			"login": "bob",
		},
		"issue": map[string]interface{}{
			"number":   float64(12),
			"title":    "Crash on empty ref",
			"html_url": "https://github.com/example/gitirc/issues/12",
		},
	}
}

func TestIssuesFormatter(t *testing.T) {
	t.Run("opened", func(t *testing.T) {
		lines, err := Render("issues", issuesPayload("opened"), nil)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}

		want := fmt.Sprintf("[%s] %s opened issue #12: Crash on empty ref: %s",
			irctext.Repo("gitirc"), irctext.User("bob"),
			irctext.URL("https://github.com/example/gitirc/issues/12"))
		if lines[0] != want {
			t.Errorf("line = %q, want %q", lines[0], want)
		}
	})

	t.Run("unknown action maps to updated", func(t *testing.T) {
		lines, err := Render("issues", issuesPayload("labeled"), nil)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(lines[0], " updated issue #12") {
			t.Errorf("line = %q, want action rendered as updated", lines[0])
		}
	})
}

func pullRequestPayload(action string, merged bool) map[string]interface{} {
	return map[string]interface{}{
		"action": action,
		"repository": map[string]interface{}{
			"name": "gitirc",
		},
		"sender": map[string]interface{}{
			"login": "carol",
		},
		"pull_request": map[string]interface{}{
			"number":   float64(9),
			"title":    "Add force-push handling",
			"merged":   merged,
			"html_url": "https://github.com/example/gitirc/pull/9",
			"base": map[string]interface{}{
				"ref": "main",
			},
			"head": map[string]interface{}{
				"ref": "force-push",
			},
		},
	}
}

func TestPullRequestFormatter(t *testing.T) {
	t.Run("opened", func(t *testing.T) {
		lines, err := Render("pull_request", pullRequestPayload("opened", false), nil)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}

		want := fmt.Sprintf("[%s] %s opened pull request #9: Add force-push handling (%s...%s): %s",
			irctext.Repo("gitirc"), irctext.User("carol"),
			irctext.Branch("main"), irctext.Branch("force-push"),
			irctext.URL("https://github.com/example/gitirc/pull/9"))
		if lines[0] != want {
			t.Errorf("line = %q, want %q", lines[0], want)
		}
	})

	t.Run("closed and merged reads as merged", func(t *testing.T) {
		lines, err := Render("pull_request", pullRequestPayload("closed", true), nil)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(lines[0], " merged pull request #9") {
			t.Errorf("line = %q, want merged verb", lines[0])
		}
	})

	t.Run("closed unmerged reads as closed", func(t *testing.T) {
		lines, err := Render("pull_request", pullRequestPayload("closed", false), nil)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(lines[0], " closed pull request #9") {
			t.Errorf("line = %q, want closed verb", lines[0])
		}
	})
}
