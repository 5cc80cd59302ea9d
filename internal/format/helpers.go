package format

import (
	"strings"

	"gitirc/internal/payload"
)

func repoName(p map[string]interface{}) string {
	return payload.Lookup(p, "repository", "name").Str()
}

func repoURL(p map[string]interface{}) string {
	return payload.Lookup(p, "repository", "url").Str()
}

func senderLogin(p map[string]interface{}) string {
	return payload.Lookup(p, "sender", "login").Str()
}

// shortSHA truncates a hash to the 7 characters shown in messages.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// refName strips the refs/heads/ or refs/tags/ prefix from a git ref.
func refName(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/heads/")
	ref = strings.TrimPrefix(ref, "refs/tags/")
	return ref
}
