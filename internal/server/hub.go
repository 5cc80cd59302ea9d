package server

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans rendered notifications out to websocket clients tailing the
// daemon. Clients may subscribe to a subset of event kinds.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan broadcastMessage
	register   chan *Client
	unregister chan *Client
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan broadcastMessage, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.subscribedTo(message.kind) {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

type broadcastMessage struct {
	kind string
	data []byte
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	kinds   []string
	kindsMu sync.RWMutex
	logger  *slog.Logger
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg subscribeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "subscribe" {
			continue
		}
		c.setKinds(msg.Kinds)
		if c.logger != nil {
			c.logger.Debug("ws subscribed", "remote", c.conn.RemoteAddr().String(), "kinds", msg.Kinds)
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

type subscribeMessage struct {
	Type  string   `json:"type"`
	Kinds []string `json:"kinds"`
}

func (c *Client) setKinds(kinds []string) {
	c.kindsMu.Lock()
	if len(kinds) == 0 {
		c.kinds = nil
	} else {
		c.kinds = append([]string(nil), kinds...)
	}
	c.kindsMu.Unlock()
}

func (c *Client) subscribedTo(kind string) bool {
	c.kindsMu.RLock()
	defer c.kindsMu.RUnlock()
	if len(c.kinds) == 0 {
		return true
	}
	for _, candidate := range c.kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}
