package galaxy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestGalaxyFileRoundTrip(t *testing.T) {
	g := Galaxy{
		{
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
			Type:          "rock",
			Water:         "biological",
			Biomes:        []Biome{{Name: "ocean", Coverage: 0.71}},
			Traits:        []string{"Active Core"},
			Resources:     []string{"Iron", "Water"},
			Domesticable:  []OrganicResource{{Name: "Aurochs", Resource: "Protein"}},
			Gatherable:    []OrganicResource{},
		},
	}

	path := filepath.Join(t.TempDir(), "galaxy.json")
	if err := g.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadGalaxy(path)
	if err != nil {
		t.Fatalf("ReadGalaxy() error = %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, g)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("WriteFile() output missing trailing newline")
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Error("WriteFile() output not indented with two spaces")
	}
	if !strings.Contains(string(data), `"gatherable": []`) {
		t.Error("WriteFile() empty collection not serialized as []")
	}
}

// The canonical layout puts fields in a fixed order so downstream diffs stay
// readable.
func TestBodyFieldOrder(t *testing.T) {
	data, err := json.Marshal(Body{
		Biomes:       []Biome{},
		Traits:       []string{},
		Resources:    []string{},
		Domesticable: []OrganicResource{},
		Gatherable:   []OrganicResource{},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"system":"","name":"","atmosphere":"","fauna":0,"flora":0,"gravity":0,` +
		`"hab_rank":0,"magnetosphere":"","planet_length":0,"temperature":"","type":"",` +
		`"water":"","biomes":[],"traits":[],"resources":[],"domesticable":[],"gatherable":[]}`
	if string(data) != want {
		t.Errorf("Marshal(Body{}) = %s, want %s", data, want)
	}
}

func TestReadResources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.json")
	doc := `[
  {
    "resource": "Iron",
    "shortName": "Fe",
    "rarity": "common",
    "type": "inorganic",
    "mass": 0.5,
    "value": 1,
    "valueToMass": 2
  }
]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := ReadResources(path)
	if err != nil {
		t.Fatalf("ReadResources() error = %v", err)
	}
	want := []Resource{{Name: "Iron", ShortName: "Fe", Rarity: "common", Type: "inorganic", Mass: 0.5, Value: 1, ValueToMass: 2}}
	if !reflect.DeepEqual(catalog, want) {
		t.Errorf("ReadResources() = %+v, want %+v", catalog, want)
	}

	if _, err := ReadResources(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadResources() with missing file: want error")
	}
}
