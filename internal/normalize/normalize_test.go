package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wrenholt/galaxydb/internal/galaxy"
	"github.com/wrenholt/galaxydb/internal/survey"
)

// completeRecord returns a record with every field present and valid.
// Tests overwrite single fields to probe one policy at a time.
func completeRecord() survey.Record {
	return survey.Record{
		"atmosphere":    "Standard O2",
		"fauna":         float64(9),
		"flora":         float64(12),
		"gravity":       "1.0g",
		"hab_rank":      "1",
		"magnetosphere": "Average",
		"planet_length": "24 hours",
		"temperature":   "Temperate",
		"type":          "Rock",
		"water":         "Biological",
		"biomes":        []any{"Ocean 71%"},
		"traits":        []any{"Active Core"},
		"resources":     []any{"Water", "Fe"},
		"domesticable":  []any{"Aurochs (Protein)"},
		"gatherable":    []any{},
	}
}

func observedNormalizer() (*Normalizer, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return New(zap.New(core)), logs
}

func TestBodyHappyPath(t *testing.T) {
	n := New(zap.NewNop())

	b, err := n.Body("Sol", "Earth", completeRecord())
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	want := galaxy.Body{
		System:        "Sol",
		Name:          "Earth",
		Atmosphere:    "standard o2",
		Fauna:         9,
		Flora:         12,
		Gravity:       1.0,
		HabRank:       1,
		Magnetosphere: "average",
		PlanetLength:  24,
		Temperature:   "temperate",
		Type:          "Rock",
		Water:         "biological",
		Biomes:        []galaxy.Biome{{Name: "Ocean", Coverage: 0.71}},
		Traits:        []string{"Active Core"},
		Resources:     []string{"Fe", "Water"},
		Domesticable:  []galaxy.OrganicResource{{Name: "Aurochs", Resource: "Protein"}},
		Gatherable:    []galaxy.OrganicResource{},
	}
	if !reflect.DeepEqual(b, want) {
		t.Errorf("Body() =\n%+v\nwant\n%+v", b, want)
	}
}

func TestIntFieldDefaults(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		want     int
		wantWarn bool
	}{
		{name: "number", field: "fauna", value: float64(7), want: 7},
		{name: "numeric string", field: "flora", value: "11", want: 11},
		{name: "padded string", field: "hab_rank", value: " 3 ", want: 3},
		{name: "garbage string", field: "fauna", value: "lots", want: 0, wantWarn: true},
		{name: "list", field: "flora", value: []any{}, want: 0, wantWarn: true},
		{name: "truncated float", field: "hab_rank", value: 2.9, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := observedNormalizer()
			rec := completeRecord()
			rec[tt.field] = tt.value

			b, err := n.Body("Sol", "Earth", rec)
			if err != nil {
				t.Fatalf("Body() error = %v", err)
			}

			var got int
			switch tt.field {
			case "fauna":
				got = b.Fauna
			case "flora":
				got = b.Flora
			case "hab_rank":
				got = b.HabRank
			}
			if got != tt.want {
				t.Errorf("%s = %d, want %d", tt.field, got, tt.want)
			}
			if warned := logs.Len() > 0; warned != tt.wantWarn {
				t.Errorf("warnings = %d, wantWarn %v", logs.Len(), tt.wantWarn)
			}
		})
	}
}

func TestPlanetLength(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		want     int
		wantWarn bool
	}{
		{name: "hours suffix", value: "24 hours", want: 24},
		{name: "hrs suffix", value: "86 hrs", want: 86},
		{name: "bare number", value: "39", want: 39},
		{name: "word", value: "soon", want: 24, wantWarn: true},
		{name: "fractional lead", value: "17.5 hours", want: 24, wantWarn: true},
		{name: "not a string", value: float64(30), want: 24, wantWarn: true},
		{name: "empty", value: "", want: 24, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := observedNormalizer()
			rec := completeRecord()
			rec["planet_length"] = tt.value

			b, err := n.Body("Sol", "Earth", rec)
			if err != nil {
				t.Fatalf("Body() error = %v", err)
			}
			if b.PlanetLength != tt.want {
				t.Errorf("PlanetLength = %d, want %d", b.PlanetLength, tt.want)
			}
			if warned := logs.Len() > 0; warned != tt.wantWarn {
				t.Errorf("warnings = %d, wantWarn %v", logs.Len(), tt.wantWarn)
			}
		})
	}
}

func TestGravity(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    float64
		wantErr bool
	}{
		{name: "g suffix", value: "1.0g", want: 1.0},
		{name: "spaced g", value: "0.44 g", want: 0.44},
		{name: "bare", value: "2.5", want: 2.5},
		{name: "word", value: "unknown", wantErr: true},
		{name: "not a string", value: 1.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(zap.NewNop())
			rec := completeRecord()
			rec["gravity"] = tt.value

			b, err := n.Body("Sol", "Earth", rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Body() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && b.Gravity != tt.want {
				t.Errorf("Gravity = %v, want %v", b.Gravity, tt.want)
			}
		})
	}
}

func TestMissingFieldFails(t *testing.T) {
	for _, field := range []string{
		"atmosphere", "fauna", "flora", "gravity", "hab_rank", "magnetosphere",
		"planet_length", "temperature", "type", "water", "biomes", "traits",
		"resources", "domesticable", "gatherable",
	} {
		t.Run(field, func(t *testing.T) {
			n := New(zap.NewNop())
			rec := completeRecord()
			delete(rec, field)

			_, err := n.Body("Sol", "Earth", rec)
			if !errors.Is(err, survey.ErrMissing) {
				t.Errorf("Body() without %s error = %v, want ErrMissing", field, err)
			}
		})
	}
}

func TestBiomes(t *testing.T) {
	n, logs := observedNormalizer()
	rec := completeRecord()
	rec["biomes"] = []any{"Desert", "Arctic 40%", "Frozen Craters 25%", "Swamp x%"}

	b, err := n.Body("Sol", "Earth", rec)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	want := []galaxy.Biome{
		{Name: "Arctic", Coverage: 0.4},
		{Name: "Desert", Coverage: 0},
		{Name: "Frozen Craters", Coverage: 0.25},
	}
	if !reflect.DeepEqual(b.Biomes, want) {
		t.Errorf("Biomes = %+v, want %+v", b.Biomes, want)
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1 for the dropped entry", logs.Len())
	}
}

func TestTraitsAndResourcesSorted(t *testing.T) {
	n := New(zap.NewNop())
	rec := completeRecord()
	rec["traits"] = []any{"Primeval Surface", "Active Core", "Active Core"}
	rec["resources"] = []any{"Water", "Al", "Fe"}

	b, err := n.Body("Sol", "Earth", rec)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if !reflect.DeepEqual(b.Traits, []string{"Active Core", "Active Core", "Primeval Surface"}) {
		t.Errorf("Traits = %v", b.Traits)
	}
	if !reflect.DeepEqual(b.Resources, []string{"Al", "Fe", "Water"}) {
		t.Errorf("Resources = %v", b.Resources)
	}
}

func TestOrganics(t *testing.T) {
	n := New(zap.NewNop())
	rec := completeRecord()
	rec["domesticable"] = []any{"Void Sloth (Argon)", "Cave Bat (Membrane)"}
	rec["gatherable"] = []any{"Glowroot"}

	b, err := n.Body("Sol", "Earth", rec)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	wantDom := []galaxy.OrganicResource{
		{Name: "Cave Bat", Resource: "Membrane"},
		{Name: "Void Sloth", Resource: "Argon"},
	}
	if !reflect.DeepEqual(b.Domesticable, wantDom) {
		t.Errorf("Domesticable = %+v, want %+v", b.Domesticable, wantDom)
	}
	wantGat := []galaxy.OrganicResource{{Name: "Glowroot", Resource: ""}}
	if !reflect.DeepEqual(b.Gatherable, wantGat) {
		t.Errorf("Gatherable = %+v, want %+v", b.Gatherable, wantGat)
	}
}

func TestEmptyCollectionsSerializeAsLists(t *testing.T) {
	n := New(zap.NewNop())
	rec := completeRecord()
	rec["biomes"] = []any{}
	rec["traits"] = []any{}
	rec["resources"] = []any{}
	rec["domesticable"] = []any{}

	b, err := n.Body("Sol", "Earth", rec)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"biomes":[]`, `"traits":[]`, `"resources":[]`, `"domesticable":[]`, `"gatherable":[]`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Marshal(Body) = %s, missing %s", data, field)
		}
	}
}

func TestCaseInsensitiveFieldNames(t *testing.T) {
	n := New(zap.NewNop())
	rec := completeRecord()
	delete(rec, "planet_length")
	delete(rec, "atmosphere")
	rec["Planet_Length"] = "30 hours"
	rec["ATMOSPHERE"] = "None"

	b, err := n.Body("Sol", "Earth", rec)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if b.PlanetLength != 30 {
		t.Errorf("PlanetLength = %d, want 30", b.PlanetLength)
	}
	if b.Atmosphere != "none" {
		t.Errorf("Atmosphere = %q, want none", b.Atmosphere)
	}
}

func TestGalaxyOrderingAndErrors(t *testing.T) {
	n := New(zap.NewNop())
	raw := survey.Survey{
		"Sol": {
			"Mars":  completeRecord(),
			"Earth": completeRecord(),
		},
		"Alpha Centauri": {
			"Chiron": completeRecord(),
		},
	}

	g, err := n.Galaxy(raw)
	if err != nil {
		t.Fatalf("Galaxy() error = %v", err)
	}
	got := make([]string, len(g))
	for i, b := range g {
		got[i] = b.System + "/" + b.Name
	}
	want := []string{"Alpha Centauri/Chiron", "Sol/Earth", "Sol/Mars"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Galaxy() order = %v, want %v", got, want)
	}

	bad := completeRecord()
	bad["gravity"] = "unknown"
	raw["Sol"]["Venus"] = bad
	if _, err := n.Galaxy(raw); err == nil {
		t.Error("Galaxy() with bad gravity: want error")
	}
}
