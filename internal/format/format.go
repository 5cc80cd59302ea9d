// Package format classifies webhook payloads and renders them as IRC
// notification lines. One Formatter per event kind, selected through the
// registry; the first rendered line is the summary, any further lines
// are details.
package format

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gitirc/internal/irctext"
)

// Formatter renders one payload into ordered notification lines. A
// formatter is constructed per dispatch, used for a single Format call,
// and never mutates the payload.
type Formatter interface {
	Format(payload map[string]interface{}) []string
}

// Constructor builds a formatter for one dispatch. The shortener may be
// nil, in which case URLs pass through unshortened.
type Constructor func(shortener irctext.Shortener) Formatter

// ErrUnsupportedKind reports that no formatter is registered for an event
// kind. Routine for kinds the notifier does not cover; callers check with
// errors.Is and skip the event.
var ErrUnsupportedKind = errors.New("no formatter registered for event kind")

var (
	registry = make(map[string]Constructor)
	mu       sync.RWMutex
)

func Register(kind string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[kind] = ctor
}

// Supported reports whether a formatter is registered for kind.
func Supported(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[kind]
	return ok
}

// Kinds lists the registered event kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Render dispatches a payload to the formatter for its kind and returns
// the rendered lines in order.
func Render(kind string, payload map[string]interface{}, shortener irctext.Shortener) ([]string, error) {
	mu.RLock()
	ctor, ok := registry[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return ctor(shortener).Format(payload), nil
}

func shorten(s irctext.Shortener, url string) string {
	if s == nil || url == "" {
		return url
	}
	return s.Shorten(url)
}
