package format

import (
	"fmt"
	"strings"

	"gitirc/internal/irctext"
	"gitirc/internal/payload"
)

// zeroSHA is the sentinel GitHub sends for the missing side of a ref
// create (before) or delete (after).
const zeroSHA = "0000000000000000000000000000000000000000"

func init() {
	Register("push", func(s irctext.Shortener) Formatter {
		return &pushFormatter{shortener: s}
	})
}

// pushFormatter classifies a push into one of six scenarios and renders a
// summary line plus one detail line per distinct commit. Classification
// order is a contract: Created > Deleted > Forced > Merge/FastForward >
// Normal, so a created+forced push always reads as "created".
type pushFormatter struct {
	shortener irctext.Shortener
}

func (f *pushFormatter) Format(p map[string]interface{}) []string {
	before := payload.Lookup(p, "before").Str()
	after := payload.Lookup(p, "after").Str()
	ref := payload.Lookup(p, "ref").Str()
	baseRef := payload.Lookup(p, "base_ref")
	forced := payload.Lookup(p, "forced").Bool()
	repo := repoName(p)
	pusher := payload.Lookup(p, "pusher", "name").Str()
	if pusher == "" {
		pusher = irctext.Somebody
	}

	branch := refName(ref)
	isTag := strings.HasPrefix(ref, "refs/tags/")
	base := refName(baseRef.Str())
	commits := payload.Lookup(p, "commits").Maps()
	distinct := distinctCommits(commits)

	var action, target string
	switch {
	case before == zeroSHA && isTag:
		at := irctext.Hash(shortSHA(after))
		if baseRef.Present() {
			at = irctext.Branch(base)
		}
		action = fmt.Sprintf("tagged %s at %s", irctext.Tag(branch), at)
		target = f.createdURL(p, branch, distinct)

	case before == zeroSHA:
		from := fmt.Sprintf("at %s", irctext.Hash(shortSHA(after)))
		if baseRef.Present() {
			from = fmt.Sprintf("from %s", irctext.Branch(base))
		}
		count := irctext.Number(len(distinct), "new commit", "new commits")
		action = fmt.Sprintf("created %s %s (+%s)", irctext.Branch(branch), from, count)
		target = f.createdURL(p, branch, distinct)

	case after == zeroSHA:
		action = fmt.Sprintf("%s %s at %s",
			irctext.Dangerous("deleted"), irctext.Branch(branch), irctext.Hash(shortSHA(before)))
		target = repoURL(p) + "/commit/" + shortSHA(before)

	case forced:
		action = fmt.Sprintf("%s %s from %s to %s",
			irctext.Dangerous("force-pushed"), irctext.Branch(branch),
			irctext.Hash(shortSHA(before)), irctext.Hash(shortSHA(after)))
		target = branchURL(p, branch)

	case len(commits) > 0 && len(distinct) == 0:
		if baseRef.Present() {
			action = fmt.Sprintf("merged %s into %s", irctext.Branch(base), irctext.Branch(branch))
		} else {
			action = fmt.Sprintf("fast-forwarded %s from %s to %s",
				irctext.Branch(branch), irctext.Hash(shortSHA(before)), irctext.Hash(shortSHA(after)))
		}
		target = f.fallthroughURL(p, distinct)

	default:
		count := irctext.Number(len(distinct), "new commit", "new commits")
		action = fmt.Sprintf("pushed %s to %s", count, irctext.Branch(branch))
		target = f.fallthroughURL(p, distinct)
	}

	lines := []string{fmt.Sprintf("[%s] %s %s: %s",
		irctext.Repo(repo), irctext.User(pusher), action,
		irctext.URL(shorten(f.shortener, target)))}

	for _, commit := range distinct {
		lines = append(lines, formatCommit(repo, branch, commit))
	}
	return lines
}

// createdURL picks the summary target for the Created scenario: the
// compare view when there are distinct commits, the branch view otherwise.
func (f *pushFormatter) createdURL(p map[string]interface{}, branch string, distinct []map[string]interface{}) string {
	if len(distinct) > 0 {
		return payload.Lookup(p, "compare").Str()
	}
	return branchURL(p, branch)
}

// fallthroughURL picks the summary target for the non-created, non-deleted,
// non-forced scenarios: a single distinct commit links to itself, anything
// else links to the compare view.
func (f *pushFormatter) fallthroughURL(p map[string]interface{}, distinct []map[string]interface{}) string {
	if len(distinct) == 1 {
		return payload.Lookup(distinct[0], "url").Str()
	}
	return payload.Lookup(p, "compare").Str()
}

func branchURL(p map[string]interface{}, branch string) string {
	return repoURL(p) + "/commits/" + branch
}

// distinctCommits filters a push's commit list down to commits marked
// distinct by the upstream source that also carry a non-blank message.
// The filter is idempotent.
func distinctCommits(commits []map[string]interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	for _, commit := range commits {
		if !payload.Lookup(commit, "distinct").Bool() {
			continue
		}
		if strings.TrimSpace(payload.Lookup(commit, "message").Str()) == "" {
			continue
		}
		out = append(out, commit)
	}
	return out
}

func formatCommit(repo, branch string, commit map[string]interface{}) string {
	sha := shortSHA(payload.Lookup(commit, "id").Str())
	author := payload.Lookup(commit, "author", "name").Str()
	title := commitTitle(payload.Lookup(commit, "message").Str())
	return fmt.Sprintf("%s/%s %s %s: %s",
		irctext.Repo(repo), irctext.Branch(branch), irctext.Hash(sha), irctext.User(author), title)
}

// commitTitle reduces a commit message to its first line. Any message
// with more than one line gets a trailing ellipsis, even when the extra
// content is only a blank line.
func commitTitle(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		return strings.TrimSpace(message[:idx]) + "..."
	}
	return strings.TrimSpace(message)
}
