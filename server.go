package main

import (
	"net"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// healthResponse is served at /health
type healthResponse struct {
	Status      string      `json:"status"`
	Connections int         `json:"connections"`
	Arenas      []ArenaInfo `json:"arenas"`
}

// statsResponse is served at /stats
type statsResponse struct {
	Events     map[string]int         `json:"events"`
	TopKillers map[string][]KillCount `json:"topKillers"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, analytics *Analytics) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:      "ok",
			Connections: hub.TotalConns(),
			Arenas:      hub.arenas.List(),
		})
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		resp := statsResponse{Events: map[string]int{}, TopKillers: map[string][]KillCount{}}
		counts, err := analytics.EventCounts(1)
		if err != nil {
			hub.log.Error("stats query", "error", err)
			http.Error(w, "stats unavailable", http.StatusInternalServerError)
			return
		}
		if counts != nil {
			resp.Events = counts
		}
		for _, mode := range []GameMode{ModeTank, ModePlane} {
			top, err := analytics.TopKillers(mode, 10)
			if err != nil {
				hub.log.Error("stats query", "error", err)
				http.Error(w, "stats unavailable", http.StatusInternalServerError)
				return
			}
			resp.TopKillers[mode.String()] = top
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// WebSocket endpoint
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		game, err := hub.arenas.Get(r.URL.Query().Get("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warn("upgrade error", "error", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, game, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	return mux
}
