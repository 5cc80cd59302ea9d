// Package server is the webhook receiver: it verifies deliveries, runs
// them through the formatting engine, and hands the rendered lines to
// the delivery dispatcher, the notification log, and the websocket tail.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gitirc/internal/deliver"
	"gitirc/internal/events"
	"gitirc/internal/format"
	"gitirc/internal/irctext"
	"gitirc/internal/payload"
	"gitirc/internal/storage"
)

type Config struct {
	Port          int
	WebhookSecret string
}

type Server struct {
	cfg        Config
	logger     *slog.Logger
	shortener  irctext.Shortener
	dispatcher *deliver.Dispatcher
	store      *storage.Storage
	hub        *Hub
}

// New assembles a server. store may be nil to disable the notification log.
func New(cfg Config, shortener irctext.Shortener, dispatcher *deliver.Dispatcher, store *storage.Storage, logger *slog.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		shortener:  shortener,
		dispatcher: dispatcher,
		store:      store,
		hub:        newHub(),
	}
	go s.hub.run()
	return s
}

// Handler returns the HTTP handler; exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if ok, err := verifyWebhookSignature(body, r.Header.Get("X-Hub-Signature-256"), s.cfg.WebhookSecret, s.logger); !ok {
		s.logger.Warn("webhook signature verification failed", "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	kind := r.Header.Get("X-GitHub-Event")
	delivery := r.Header.Get("X-GitHub-Delivery")
	if kind == "" {
		http.Error(w, "missing X-GitHub-Event header", http.StatusBadRequest)
		return
	}

	var p map[string]interface{}
	if err := json.Unmarshal(body, &p); err != nil {
		s.logger.Warn("undecodable payload", "kind", kind, "delivery", delivery, "error", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	lines, err := format.Render(kind, p, s.shortener)
	if err != nil {
		// Unrecognized kinds are routine; acknowledge and move on.
		s.logger.Debug("skipping event", "kind", kind, "delivery", delivery, "reason", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	n := events.NewNotification(kind, lines)
	n.DeliveryID = delivery
	n.Repo = repoSlug(p)

	s.dispatcher.Deliver(n)

	if s.store != nil {
		if err := s.store.Save(n); err != nil {
			s.logger.Error("failed to log notification", "id", n.ID, "error", err)
		}
	}

	if encoded, err := n.ToJSON(); err == nil {
		select {
		case s.hub.broadcast <- broadcastMessage{kind: kind, data: encoded}:
		default:
			s.logger.Debug("broadcast dropped", "kind", kind, "delivery", delivery)
		}
	}

	s.logger.Info("webhook relayed", "kind", kind, "delivery", delivery, "repo", n.Repo, "lines", len(lines))
	w.WriteHeader(http.StatusOK)
}

// repoSlug prefers the owner/name form GitHub sends in full_name.
func repoSlug(p map[string]interface{}) string {
	if slug := payload.Lookup(p, "repository", "full_name").Str(); slug != "" {
		return slug
	}
	return payload.Lookup(p, "repository", "name").Str()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	s.logger.Debug("ws connected", "remote", r.RemoteAddr)

	client := &Client{
		hub:    s.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		logger: s.logger,
	}
	s.hub.register <- client

	go client.writePump()
	client.readPump()

	s.logger.Debug("ws disconnected", "remote", r.RemoteAddr)
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "port", s.cfg.Port, "kinds", format.Kinds())
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
