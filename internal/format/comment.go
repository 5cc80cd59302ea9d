package format

import (
	"fmt"

	"gitirc/internal/irctext"
	"gitirc/internal/payload"
)

func init() {
	Register("pull_request_review_comment", func(s irctext.Shortener) Formatter {
		return &reviewCommentFormatter{shortener: s}
	})
}

// reviewCommentFormatter renders a pull request review comment as a single
// summary line.
type reviewCommentFormatter struct {
	shortener irctext.Shortener
}

func (f *reviewCommentFormatter) Format(p map[string]interface{}) []string {
	number := payload.Lookup(p, "pull_request", "number").Int()
	sha := shortSHA(payload.Lookup(p, "comment", "commit_id").Str())
	body := payload.Lookup(p, "comment", "body").Str()
	url := payload.Lookup(p, "comment", "html_url").Str()

	line := fmt.Sprintf("[%s] %s commented on pull request #%d %s: %s: %s",
		irctext.Repo(repoName(p)), irctext.User(senderLogin(p)), number,
		irctext.Hash(sha), irctext.Prettify(body),
		irctext.URL(shorten(f.shortener, url)))
	return []string{line}
}
