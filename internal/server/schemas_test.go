package server

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

// The observer protocol is documented by the JSON Schemas under schemas/;
// this pins the Go structs to them.
func TestMessagesMatchSchemas(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		s, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", name))
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}
	validate := func(s *jsonschema.Schema, msg any) {
		t.Helper()
		b, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	bootstrapSchema := compile("bootstrap.schema.json")
	statsSchema := compile("stats.schema.json")
	tickSchema := compile("tick.schema.json")

	params := sim.DefaultParameters()
	params.Width = 5
	params.Height = 5
	params.InitialInfectionRate = 0.5
	m, err := sim.NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	s := New(m, "schema-run", time.Second, nil)

	validate(bootstrapSchema, s.bootstrapMsg())
	validate(statsSchema, collect.Take(m))

	m.Step()
	validate(tickSchema, TickMsg{
		Type:            TypeTick,
		ProtocolVersion: ProtocolVersion,
		RunID:           "schema-run",
		Running:         m.Running(),
		Snapshot:        collect.Take(m),
		Cells:           cellStates(m),
	})
}
