package server

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"queuesim/internal/models"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamPingInterval = 30 * time.Second
	subscriberBuffer   = 16

	streamTypeHistory = "history"
	streamTypeRun     = "run"
)

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

type streamMessage struct {
	Type string            `json:"type"`
	Runs []models.RunEntry `json:"runs,omitempty"`
	Run  *models.RunEntry  `json:"run,omitempty"`
}

// Hub fans finished runs out to stream subscribers. Subscribers that fall
// behind by more than their buffer are dropped.
type Hub struct {
	mu   sync.Mutex
	subs map[chan models.RunEntry]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan models.RunEntry]struct{})}
}

// Subscribe registers a new subscriber. The returned func unsubscribes; the
// channel is closed when the subscriber is removed.
func (h *Hub) Subscribe() (<-chan models.RunEntry, func()) {
	ch := make(chan models.RunEntry, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() { h.remove(ch) }
}

// Publish delivers entry to every subscriber without blocking.
func (h *Hub) Publish(entry models.RunEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- entry:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(ch chan models.RunEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("stream upgrade failed")
		return
	}
	s.serveStream(conn, limit)
}

func (s *Server) serveStream(conn *websocket.Conn, limit int) {
	defer conn.Close()

	runs, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	if err := writeStreamPayload(conn, streamMessage{
		Type: streamTypeHistory,
		Runs: s.storage.HistoryN(limit),
	}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-runs:
			if !ok {
				return
			}
			if err := writeStreamPayload(conn, streamMessage{Type: streamTypeRun, Run: &entry}); err != nil {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(streamWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeStreamPayload(conn *websocket.Conn, payload streamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(payload)
}
