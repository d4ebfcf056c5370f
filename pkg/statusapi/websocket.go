// Package statusapi serves the decoder's read-only observability surface
// (§9.7): a JSON status endpoint and a websocket event feed, adapted from
// the teacher's web dashboard hub/broadcast shape but without any of the
// teacher's peer/bridge management UI — this decoder has no control
// surface beyond read-only status, per §9.7's "not a GUI" note.
package statusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is one broadcastable status-feed message: sync acquired/lost,
// grant tuned, ENC lockout, CC return, candidate cooldown (§7's
// "log line per significant event" list). ID opaquely identifies this
// broadcast for client-side dedup/correlation; Broadcast stamps it with
// uuid.NewString() when left empty.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Marshal converts an event to JSON bytes.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// client is one connected websocket subscriber.
type client struct {
	id       string
	conn     *websocket.Conn
	messages chan []byte
}

// Hub manages websocket subscribers and broadcasts status events to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan Event
	register   chan *client
	unregister chan *client
	log        *logger.Logger
	mu         sync.RWMutex
}

// NewHub builds a Hub ready to Run.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		log:        log.WithComponent("statusapi"),
	}
}

// Run drains the hub's register/unregister/broadcast channels until ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.messages)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := event.Marshal()
			if err != nil {
				h.log.Error("failed to marshal status event", logger.Error(err))
				continue
			}
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.messages <- data:
				default:
					h.log.Warn("client buffer full, dropping event", logger.String("client_id", c.id))
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.messages)
			}
			h.clients = make(map[*client]bool)
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast publishes an event to every connected subscriber, dropping it
// if the hub's internal queue is full.
func (h *Hub) Broadcast(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("broadcast queue full, dropping event", logger.String("event_type", event.Type))
	}
}

// ClientCount reports the number of live subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handler returns an http.Handler that upgrades GET requests to a
// websocket event stream.
func (h *Hub) Handler() http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
			return
		}
		c := &client{id: r.RemoteAddr, conn: conn, messages: make(chan []byte, 256)}
		h.register <- c

		go func() {
			defer func() {
				h.unregister <- c
				_ = c.conn.Close()
			}()
			c.conn.SetReadLimit(1024)
			for {
				if _, _, err := c.conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go func() {
			for msg := range c.messages {
				_ = c.conn.WriteMessage(websocket.TextMessage, msg)
			}
		}()
	})
}

// Event-type helpers matching §7's named significant events.
func (h *Hub) SyncAcquired(family string)   { h.Broadcast(Event{Type: "sync_acquired", Data: map[string]interface{}{"family": family}}) }
func (h *Hub) SyncLost(family string)       { h.Broadcast(Event{Type: "sync_lost", Data: map[string]interface{}{"family": family}}) }
func (h *Hub) GrantTuned(freqHz int64, tg uint32) {
	h.Broadcast(Event{Type: "grant_tuned", Data: map[string]interface{}{"freq_hz": freqHz, "talkgroup": tg}})
}
func (h *Hub) EncLockout(tg uint32) {
	h.Broadcast(Event{Type: "enc_lockout", Data: map[string]interface{}{"talkgroup": tg}})
}
func (h *Hub) CCReturn(reason string) {
	h.Broadcast(Event{Type: "cc_return", Data: map[string]interface{}{"reason": reason}})
}
func (h *Hub) CandidateCooldown(freqHz int64, ttlS float64) {
	h.Broadcast(Event{Type: "candidate_cooldown", Data: map[string]interface{}{"freq_hz": freqHz, "ttl_s": ttlS}})
}
