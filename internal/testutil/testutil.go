package testutil

// RecordingShortener implements irctext.Shortener for tests: it records
// the last URL it was asked to shorten and returns it prefixed, so tests
// can assert both the chosen target URL and that shortening was applied.
type RecordingShortener struct {
	Last   string
	Prefix string
}

func (s *RecordingShortener) Shorten(url string) string {
	s.Last = url
	return s.Prefix + url
}

// PushPayloadBuilder assembles push webhook payloads the way the receiver
// delivers them: decoded JSON with float64 numbers.
type PushPayloadBuilder struct {
	payload map[string]interface{}
	commits []interface{}
}

func NewPushPayload() *PushPayloadBuilder {
	return &PushPayloadBuilder{
		payload: map[string]interface{}{
			"ref":     "refs/heads/main",
			"before":  "1111111111111111111111111111111111111111",
			"after":   "2222222222222222222222222222222222222222",
			"forced":  false,
			"compare": "https://github.com/example/gitirc/compare/1111111...2222222",
			"pusher": map[string]interface{}{
				"name": "octocat",
			},
			"repository": map[string]interface{}{
				"name": "gitirc",
				"url":  "https://github.com/example/gitirc",
			},
		},
	}
}

func (b *PushPayloadBuilder) WithRef(ref string) *PushPayloadBuilder {
	b.payload["ref"] = ref
	return b
}

func (b *PushPayloadBuilder) WithBefore(sha string) *PushPayloadBuilder {
	b.payload["before"] = sha
	return b
}

func (b *PushPayloadBuilder) WithAfter(sha string) *PushPayloadBuilder {
	b.payload["after"] = sha
	return b
}

func (b *PushPayloadBuilder) WithBaseRef(ref string) *PushPayloadBuilder {
	b.payload["base_ref"] = ref
	return b
}

func (b *PushPayloadBuilder) WithForced(forced bool) *PushPayloadBuilder {
	b.payload["forced"] = forced
	return b
}

func (b *PushPayloadBuilder) WithPusher(name string) *PushPayloadBuilder {
	b.payload["pusher"] = map[string]interface{}{"name": name}
	return b
}

func (b *PushPayloadBuilder) WithoutPusher() *PushPayloadBuilder {
	delete(b.payload, "pusher")
	return b
}

func (b *PushPayloadBuilder) WithCompare(url string) *PushPayloadBuilder {
	b.payload["compare"] = url
	return b
}

func (b *PushPayloadBuilder) AddCommit(id, message string, distinct bool) *PushPayloadBuilder {
	return b.AddAuthoredCommit(id, message, distinct, "octocat")
}

func (b *PushPayloadBuilder) AddAuthoredCommit(id, message string, distinct bool, author string) *PushPayloadBuilder {
	commit := map[string]interface{}{
		"id":       id,
		"message":  message,
		"distinct": distinct,
		"url":      "https://github.com/example/gitirc/commit/" + id,
	}
	if author != "" {
		commit["author"] = map[string]interface{}{"name": author}
	}
	b.commits = append(b.commits, commit)
	return b
}

func (b *PushPayloadBuilder) Build() map[string]interface{} {
	b.payload["commits"] = b.commits
	return b.payload
}

// ReviewCommentPayload builds a minimal pull request review comment payload.
func ReviewCommentPayload(sender, body string, number int) map[string]interface{} {
	return map[string]interface{}{
		"repository": map[string]interface{}{
			"name": "gitirc",
			"url":  "https://github.com/example/gitirc",
		},
		"sender": map[string]interface{}{
			"login": sender,
		},
		"pull_request": map[string]interface{}{
			"number": float64(number),
		},
		"comment": map[string]interface{}{
			"commit_id": "abcdef0123456789abcdef0123456789abcdef01",
			"body":      body,
			"html_url":  "https://github.com/example/gitirc/pull/7#discussion_r1",
		},
	}
}
