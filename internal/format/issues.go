package format

import (
	"fmt"

	"gitirc/internal/irctext"
	"gitirc/internal/payload"
)

func init() {
	Register("issues", func(s irctext.Shortener) Formatter {
		return &issuesFormatter{shortener: s}
	})
}

type issuesFormatter struct {
	shortener irctext.Shortener
}

func (f *issuesFormatter) Format(p map[string]interface{}) []string {
	action := issueAction(payload.Lookup(p, "action").Str())
	number := payload.Lookup(p, "issue", "number").Int()
	title := payload.Lookup(p, "issue", "title").Str()
	url := payload.Lookup(p, "issue", "html_url").Str()

	line := fmt.Sprintf("[%s] %s %s issue #%d: %s: %s",
		irctext.Repo(repoName(p)), irctext.User(senderLogin(p)), action, number,
		irctext.Prettify(title), irctext.URL(shorten(f.shortener, url)))
	return []string{line}
}

// issueAction maps the payload action onto a fixed verb so no raw payload
// text reaches the line outside the text primitives.
func issueAction(action string) string {
	switch action {
	case "opened", "closed", "reopened":
		return action
	default:
		return "updated"
	}
}
