// Package server exposes a running model to browser observers: a JSON
// bootstrap endpoint, a current-stats endpoint, and a websocket streaming one
// message per tick. The stream is strictly read-only; parameters are fixed at
// model construction.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

// Server drives the step loop and fans tick messages out to subscribers.
// The simulation core is single-threaded; every model access goes through mu.
type Server struct {
	log      *slog.Logger
	interval time.Duration
	runID    string

	upgrader websocket.Upgrader

	mu    sync.Mutex
	model *sim.Model
	subs  map[chan []byte]struct{}
}

// New wraps a freshly constructed model. interval is the wall-clock duration
// of one tick.
func New(m *sim.Model, runID string, interval time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		log:      logger,
		interval: interval,
		runID:    runID,
		model:    m,
		subs:     make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// Routes returns the HTTP mux for the observer surface.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bootstrap", s.handleBootstrap)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run steps the model at the configured interval until the run terminates or
// the context is canceled. Endpoints keep serving the final state afterwards.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if !s.model.Running() {
			s.mu.Unlock()
			s.log.Info("simulation halted", "tick", s.model.StepCount())
			return
		}
		s.model.Step()
		msg := TickMsg{
			Type:            TypeTick,
			ProtocolVersion: ProtocolVersion,
			RunID:           s.runID,
			Running:         s.model.Running(),
			Snapshot:        collect.Take(s.model),
			Cells:           cellStates(s.model),
		}
		s.mu.Unlock()

		b, err := json.Marshal(msg)
		if err != nil {
			s.log.Error("encoding tick", "err", err)
			continue
		}
		s.broadcast(b)
	}
}

func (s *Server) broadcast(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- b:
		default:
			// Slow observer: drop the frame rather than stall the loop.
		}
	}
}

func (s *Server) bootstrapMsg() BootstrapMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BootstrapMsg{
		Type:            TypeBootstrap,
		ProtocolVersion: ProtocolVersion,
		RunID:           s.runID,
		TotalPopulation: s.model.TotalPopulation(),
		Params:          paramsPayload(s.model.Params()),
	}
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.bootstrapMsg())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	snap := collect.Take(s.model)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Bootstrap first so the client can size its canvas.
	hello, err := json.Marshal(s.bootstrapMsg())
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return
	}

	out := make(chan []byte, 16)
	s.mu.Lock()
	s.subs[out] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.subs, out)
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: the stream is read-only, so incoming data is
	// discarded; a read error means the observer left.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case b := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
	}
}
