package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

func testServer(t *testing.T) (*Server, *sim.Model) {
	t.Helper()
	params := sim.DefaultParameters()
	params.Width = 6
	params.Height = 6
	params.PopulationDensity = 1.0
	params.InitialInfectionRate = 0.5
	params.RecoveryDays = 100 // keep the run going for the whole test
	params.DeathRate = 0
	params.Seed = 8
	m, err := sim.NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(m, "test-run", 5*time.Millisecond, logger), m
}

func TestBootstrapEndpoint(t *testing.T) {
	s, m := testServer(t)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/bootstrap")
	if err != nil {
		t.Fatalf("GET bootstrap: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var msg BootstrapMsg
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeBootstrap || msg.ProtocolVersion != ProtocolVersion {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.RunID != "test-run" {
		t.Fatalf("run ID %q", msg.RunID)
	}
	if msg.TotalPopulation != m.TotalPopulation() {
		t.Fatalf("population %d, want %d", msg.TotalPopulation, m.TotalPopulation())
	}
	if msg.Params.Width != 6 || msg.Params.Height != 6 {
		t.Fatalf("params %+v", msg.Params)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s, m := testServer(t)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	defer resp.Body.Close()

	var snap collect.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Step != 0 {
		t.Fatalf("step %d before any tick", snap.Step)
	}
	if got := snap.Susceptible + snap.Infected; got != m.TotalPopulation() {
		t.Fatalf("susceptible+infected = %d, want %d", got, m.TotalPopulation())
	}
}

func TestEndpointsRejectNonGET(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	for _, path := range []string{"/api/bootstrap", "/api/stats"} {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader("{}"))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("POST %s: status %d", path, resp.StatusCode)
		}
	}
}

func TestWebsocketStream(t *testing.T) {
	s, m := testServer(t)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// First message is the bootstrap.
	var hello BootstrapMsg
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read bootstrap: %v", err)
	}
	if hello.Type != TypeBootstrap {
		t.Fatalf("first message type %q", hello.Type)
	}

	// Then one message per tick.
	var tick TickMsg
	if err := conn.ReadJSON(&tick); err != nil {
		t.Fatalf("read tick: %v", err)
	}
	if tick.Type != TypeTick || tick.ProtocolVersion != ProtocolVersion {
		t.Fatalf("unexpected tick envelope: %+v", tick)
	}
	if tick.Snapshot.Step < 1 {
		t.Fatalf("tick step %d", tick.Snapshot.Step)
	}
	if len(tick.Cells) != m.TotalPopulation() {
		t.Fatalf("got %d cells, want %d", len(tick.Cells), m.TotalPopulation())
	}
	for _, c := range tick.Cells {
		if c.X < 0 || c.X >= 6 || c.Y < 0 || c.Y >= 6 {
			t.Fatalf("cell out of bounds: %+v", c)
		}
	}
}
