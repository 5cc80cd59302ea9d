// Package irctext renders identifiers and message fragments in the mIRC
// color/format codes the notifier emits. Handlers must route every piece
// of payload-derived text through these helpers so untrusted content
// cannot smuggle control codes into the output channel.
package irctext

import (
	"fmt"
	"strings"
)

// mIRC control codes.
const (
	colorRepo   = "\x0313"
	colorBranch = "\x0306"
	colorUser   = "\x0315"
	colorHash   = "\x0314"
	colorURL    = "\x0302\x1f"
	colorDanger = "\x0304"
	reset       = "\x0f"
)

// Somebody substitutes for a missing pusher name in push summaries.
const Somebody = "somebody"

// prettifyMax bounds the display length of comment excerpts.
const prettifyMax = 72

func wrap(code, s string) string {
	if s == "" {
		return ""
	}
	return code + s + reset
}

func Repo(name string) string   { return wrap(colorRepo, name) }
func Branch(name string) string { return wrap(colorBranch, name) }
func Tag(name string) string    { return wrap(colorBranch, name) }
func User(name string) string   { return wrap(colorUser, name) }

// Hash renders a commit hash. Callers truncate to 7 characters first.
func Hash(sha string) string { return wrap(colorHash, sha) }

// URL renders the final message-safe form of a link.
func URL(u string) string { return wrap(colorURL, u) }

// Dangerous flags a destructive action word ("deleted", "force-pushed").
func Dangerous(word string) string { return wrap(colorDanger, word) }

// Number renders a pluralized count: Number(1, "commit", "commits").
func Number(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Prettify collapses a comment or message body to a single bounded display
// line: first line only, at most prettifyMax characters, with "..." appended
// whenever content continued past what is shown.
func Prettify(text string) string {
	trimmed := strings.TrimSpace(text)
	line := trimmed
	continued := false
	if idx := strings.IndexByte(trimmed, '\n'); idx != -1 {
		line = strings.TrimRight(trimmed[:idx], "\r ")
		continued = true
	}
	if len(line) > prettifyMax {
		line = line[:prettifyMax]
		continued = true
	}
	if continued {
		line += "..."
	}
	return line
}

// Shortener shortens a URL for inclusion in a summary line. Implementations
// must return the original URL on any failure; shortening is best effort.
type Shortener interface {
	Shorten(url string) string
}
