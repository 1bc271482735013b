package web

import (
	"sync"

	"github.com/teslashibe/go-gaze/internal/log"
)

// hub fans broadcast messages out to the connected websocket clients.
// Slow clients are dropped rather than allowed to stall the broadcast.
type hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[chan []byte]struct{})}
}

// register adds a client and returns its send channel.
func (h *hub) register() chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Debug("dashboard client connected", "total", n)
	return ch
}

// unregister removes a client and closes its channel.
func (h *hub) unregister(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	n := len(h.clients)
	h.mu.Unlock()
	log.Debug("dashboard client disconnected", "remaining", n)
}

// broadcast queues msg for every client, dropping those whose buffers are
// full.
func (h *hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			delete(h.clients, ch)
			close(ch)
			log.Warn("dropped slow dashboard client")
		}
	}
}

func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
