// Package deliver routes rendered notifications to IRC channels. The chat
// protocol client stays behind the Sender interface; this package only
// decides which channels get which lines and spools notifications the
// sender cannot take.
package deliver

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gitirc/internal/events"
	"gitirc/internal/queue"
)

// Sender delivers one line to one channel. Each line is one discrete
// protocol-layer message; callers rely on Send preserving call order.
type Sender interface {
	Send(channel, line string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(channel, line string) error

func (f SenderFunc) Send(channel, line string) error {
	return f(channel, line)
}

// WriterSender writes lines to an io.Writer, one per line, prefixed with
// the channel. Used for the dry-run CLI and as the default daemon sink.
type WriterSender struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSender(w io.Writer) *WriterSender {
	return &WriterSender{w: w}
}

func (s *WriterSender) Send(channel, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s %s\n", channel, line)
	return err
}

// Router maps repository slugs to channels; safe for concurrent use and
// updated in place on config reload.
type Router struct {
	mu       sync.RWMutex
	defaults []string
	repos    map[string][]string
}

func NewRouter(defaults []string, repos map[string][]string) *Router {
	r := &Router{}
	r.Update(defaults, repos)
	return r
}

func (r *Router) Update(defaults []string, repos map[string][]string) {
	copied := make(map[string][]string, len(repos))
	for repo, channels := range repos {
		copied[repo] = append([]string(nil), channels...)
	}

	r.mu.Lock()
	r.defaults = append([]string(nil), defaults...)
	r.repos = copied
	r.mu.Unlock()
}

func (r *Router) ChannelsFor(repo string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if channels, ok := r.repos[repo]; ok && len(channels) > 0 {
		return channels
	}
	return r.defaults
}

// Dispatcher fans a notification's lines out to its channels, in order,
// and spools the notification when the sender fails.
type Dispatcher struct {
	sender Sender
	router *Router
	spool  *queue.Queue
	logger *slog.Logger
}

func NewDispatcher(sender Sender, router *Router, spool *queue.Queue, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		router: router,
		spool:  spool,
		logger: logger,
	}
}

// Deliver sends every line of the notification to every routed channel.
// On the first send error the notification is spooled once and delivery
// stops; delivery never returns an error to the webhook path.
func (d *Dispatcher) Deliver(n *events.Notification) {
	channels := d.router.ChannelsFor(n.Repo)
	if len(channels) == 0 {
		d.logger.Debug("no channels routed", "repo", n.Repo, "kind", n.Kind)
		return
	}

	for _, channel := range channels {
		for _, line := range n.Lines {
			if err := d.sender.Send(channel, line); err != nil {
				d.logger.Error("send failed, spooling notification",
					"channel", channel, "kind", n.Kind, "error", err)
				d.enqueue(n)
				return
			}
		}
	}
}

func (d *Dispatcher) enqueue(n *events.Notification) {
	if d.spool == nil {
		return
	}
	if err := d.spool.Enqueue(n); err != nil {
		d.logger.Error("spool failed, notification dropped", "id", n.ID, "error", err)
	}
}

// Flush retries every spooled notification, removing the ones that go
// through. It stops at the first failure so order is preserved.
func (d *Dispatcher) Flush() error {
	if d.spool == nil {
		return nil
	}

	queued, err := d.spool.List()
	if err != nil {
		return fmt.Errorf("list spool: %w", err)
	}

	for _, n := range queued {
		channels := d.router.ChannelsFor(n.Repo)
		for _, channel := range channels {
			for _, line := range n.Lines {
				if err := d.sender.Send(channel, line); err != nil {
					return fmt.Errorf("resend %s: %w", n.ID, err)
				}
			}
		}
		if err := d.spool.Remove(n.ID); err != nil {
			return fmt.Errorf("unspool %s: %w", n.ID, err)
		}
	}

	return nil
}
