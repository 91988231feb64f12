// Package telemetry streams race snapshots to websocket spectators. It is a
// read-only observer: nothing flows back from a connection into the race.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"slalom/internal/logger"
)

// Snapshot is the spectator view of one simulation frame.
type Snapshot struct {
	State       string  `json:"state"`
	Score       int     `json:"score"`
	ElapsedMs   int64   `json:"elapsedMs"`
	GatesPassed int     `json:"gatesPassed"`
	TotalGates  int     `json:"totalGates"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Speed       float64 `json:"speed"`
}

type Server struct {
	log      *logger.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewServer(log *logger.Logger) *Server {
	return &Server{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Start serves /ws on addr in the background. Listen failures are logged, not
// fatal: the race runs fine without spectators.
func (s *Server) Start(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/ws", s.handleWS)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		s.log.Printf("spectator stream listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Printf("spectator stream failed: %v", err)
		}
	}()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Printf("spectator connected from %s", r.RemoteAddr)

	// Drain (and discard) incoming frames so pings are answered and closes
	// are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

// Broadcast sends a snapshot to every connected spectator, dropping
// connections whose writes fail.
func (s *Server) Broadcast(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.conns, conn)
			conn.Close()
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		conn.Close()
	}
}
