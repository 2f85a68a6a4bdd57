// Package session tracks the games running on a shared host so it can share
// the best score between players and shut every game down gracefully.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Handle is one registered game.
type Handle struct {
	ID       int
	Username string

	// Shutdown is closed when the host is going down.
	Shutdown <-chan struct{}

	shutdown chan struct{}
}

// Hub is the registry of running games on a host.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
	best     int
	bestUser string
	closing  bool
	logger   *log.Logger
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions: make(map[int]*Handle),
		nextID:   1,
		logger:   logger,
	}
}

// Register adds a game for username and returns its handle. Games registered
// during a shutdown get an already closed Shutdown channel.
func (h *Hub) Register(username string) *Handle {
	ch := make(chan struct{})
	handle := &Handle{Username: username, Shutdown: ch, shutdown: ch}

	h.mu.Lock()
	handle.ID = h.nextID
	h.nextID++
	h.sessions[handle.ID] = handle
	if h.closing {
		close(ch)
	}
	count := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("session registered", "id", handle.ID, "user", username, "sessions", count)
	return handle
}

// Unregister removes a game. Unknown IDs are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	count := len(h.sessions)
	h.mu.Unlock()

	if ok {
		h.logger.Info("session unregistered", "id", id, "sessions", count)
	}
}

// Count returns the number of registered games.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ReportScore records the final score of a game. Returns true if it is the
// new best on this host.
func (h *Hub) ReportScore(username string, score int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if score <= h.best {
		return false
	}
	h.best = score
	h.bestUser = username
	h.logger.Info("new best score", "user", username, "score", score)
	return true
}

// Best returns the best score on this host and who made it.
func (h *Hub) Best() (int, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.best, h.bestUser
}

// Shutdown notifies every game and waits for all of them to unregister, up
// to timeout. Returns the number of games still running.
func (h *Hub) Shutdown(timeout time.Duration) int {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		for _, handle := range h.sessions {
			close(handle.shutdown)
		}
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		remaining := h.Count()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "sessions", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
