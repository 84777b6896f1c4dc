package main

import (
	"sync"

	"github.com/charmbracelet/log"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub tracks live connections and routes them to arenas
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
	arenas     *ArenaRegistry
	auth       *Auth
	log        *log.Logger

	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
	maxConns   int
}

// NewHub creates a Hub. auth may be nil when join tickets are not required.
func NewHub(arenas *ArenaRegistry, auth *Auth, logger *log.Logger, maxConns int) *Hub {
	if maxConns <= 0 {
		maxConns = maxTotalConns
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		arenas:     arenas,
		auth:       auth,
		log:        logger.With("component", "hub"),
		ipConns:    make(map[string]int),
		maxConns:   maxConns,
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= h.maxConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events until stop is closed
func (h *Hub) Run(stop <-chan struct{}) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("client connected", "session", client.sessionID, "addr", client.remoteAddr)

		case client := <-h.unregister:
			// Leave the arena first so no broadcast can reach a closed channel
			client.leave()
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Debug("client disconnected", "session", client.sessionID, "addr", client.remoteAddr)

		case <-stop:
			return
		}
	}
}

// Unregister hands a finished client to Run. After Run has returned the client
// leaves its arena directly.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		c.leave()
	}
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
