package format

import (
	"fmt"

	"gitirc/internal/irctext"
	"gitirc/internal/payload"
)

func init() {
	Register("pull_request", func(s irctext.Shortener) Formatter {
		return &pullRequestFormatter{shortener: s}
	})
}

type pullRequestFormatter struct {
	shortener irctext.Shortener
}

func (f *pullRequestFormatter) Format(p map[string]interface{}) []string {
	number := payload.Lookup(p, "pull_request", "number").Int()
	title := payload.Lookup(p, "pull_request", "title").Str()
	base := payload.Lookup(p, "pull_request", "base", "ref").Str()
	head := payload.Lookup(p, "pull_request", "head", "ref").Str()
	url := payload.Lookup(p, "pull_request", "html_url").Str()

	action := payload.Lookup(p, "action").Str()
	merged := payload.Lookup(p, "pull_request", "merged").Bool()
	verb := pullRequestAction(action, merged)

	line := fmt.Sprintf("[%s] %s %s pull request #%d: %s (%s...%s): %s",
		irctext.Repo(repoName(p)), irctext.User(senderLogin(p)), verb, number,
		irctext.Prettify(title), irctext.Branch(base), irctext.Branch(head),
		irctext.URL(shorten(f.shortener, url)))
	return []string{line}
}

// pullRequestAction maps the payload action onto a fixed verb. A close
// with merged=true reads as "merged".
func pullRequestAction(action string, merged bool) string {
	switch {
	case action == "closed" && merged:
		return "merged"
	case action == "opened" || action == "closed" || action == "reopened":
		return action
	default:
		return "updated"
	}
}
