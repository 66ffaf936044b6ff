package network

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadJSONFile_London(t *testing.T) {
	net, err := LoadJSONFile(filepath.Join("..", "testdata", "london.json"))
	if err != nil {
		t.Fatalf("failed to load london.json: %v", err)
	}

	if net.StationCount() != 29 {
		t.Errorf("expected 29 stations, got %d", net.StationCount())
	}
	if net.LineCount() != 9 {
		t.Errorf("expected 9 lines, got %d", net.LineCount())
	}
	// two records reference an unknown station and an unknown line
	if net.ConnectionCount() != 47 {
		t.Errorf("expected 47 connections, got %d", net.ConnectionCount())
	}

	st, ok := net.Station("265")
	if !ok {
		t.Fatal("Turnham Green missing")
	}
	if st.Name != "Turnham Green" || !reflect.DeepEqual(st.Zones, []int{2, 3}) {
		t.Errorf("unexpected station %v", st)
	}

	olympia, ok := net.StationByName("Kensington (Olympia)")
	if !ok {
		t.Fatal("numeric zone station missing")
	}
	if !reflect.DeepEqual(olympia.Zones, []int{2}) {
		t.Errorf("unexpected zones %v", olympia.Zones)
	}

	first := net.Connections()[0]
	if first.StationA != "110" || first.StationB != "17" || first.LineID != "4" || first.Time != 1 {
		t.Errorf("unexpected first connection %v", first)
	}
}

func TestLoadJSON_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty document", input: ""},
		{name: "broken json", input: `{"stations": [`},
		{name: "not an object", input: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := LoadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if net != nil {
				t.Error("no network should be returned on error")
			}
		})
	}
}

func TestLoadJSONFile_Missing(t *testing.T) {
	if _, err := LoadJSONFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadJSON_PartialDocuments(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantStations    int
		wantLines       int
		wantConnections int
	}{
		{
			name:  "empty object",
			input: `{}`,
		},
		{
			name: "missing lines",
			input: `{"stations": [{"id": "1", "name": "Station A", "zone": "1"}, {"id": "2", "name": "Station B", "zone": "2"}],
				"connections": [{"station1": "1", "station2": "2", "line": "1", "time": "5"}]}`,
			wantStations: 2,
		},
		{
			name: "missing stations",
			input: `{"lines": [{"id": "1", "name": "Line A"}],
				"connections": [{"station1": "1", "station2": "2", "line": "1", "time": "5"}]}`,
			wantLines: 1,
		},
		{
			name: "missing connections",
			input: `{"stations": [{"id": "1", "name": "Station A", "zone": "1"}, {"id": "2", "name": "Station B", "zone": "2"}],
				"lines": [{"id": "1", "name": "Line A"}]}`,
			wantStations: 2,
			wantLines:    1,
		},
		{
			name: "numeric fields",
			input: `{"stations": [{"id": 1, "name": "Station A", "zone": 1}, {"id": 2, "name": "Station B", "zone": 2.5}],
				"lines": [{"id": 1, "name": "Line A"}],
				"connections": [{"station1": 1, "station2": 2, "line": 1, "time": 5}]}`,
			wantStations:    2,
			wantLines:       1,
			wantConnections: 1,
		},
		{
			name: "malformed records skipped",
			input: `{"stations": [{"id": "1", "name": "Station A", "zone": "1"}, {"id": "2", "name": "Station B", "zone": "x"},
					{"name": "No Id", "zone": "1"}, {"id": "3", "name": "Station C", "zone": "1"}],
				"lines": [{"id": "1", "name": "Line A"}, {"id": "2"}],
				"connections": [
					{"station1": "1", "station2": "3", "line": "1", "time": "5"},
					{"station1": "1", "station2": "1", "line": "1", "time": "5"},
					{"station1": "1", "station2": "3", "line": "1", "time": "-2"},
					{"station1": "1", "station2": "3", "line": "1", "time": "soon"},
					{"station1": "1", "station2": "3", "line": "1"},
					{"station1": "1", "station2": "2", "line": "1", "time": "5"}
				]}`,
			wantStations:    2,
			wantLines:       1,
			wantConnections: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := LoadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if net.StationCount() != tt.wantStations {
				t.Errorf("stations: got %d, want %d", net.StationCount(), tt.wantStations)
			}
			if net.LineCount() != tt.wantLines {
				t.Errorf("lines: got %d, want %d", net.LineCount(), tt.wantLines)
			}
			if net.ConnectionCount() != tt.wantConnections {
				t.Errorf("connections: got %d, want %d", net.ConnectionCount(), tt.wantConnections)
			}
		})
	}
}

func TestLoadJSONFile_FromDisk(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tiny.json")
	doc := `{"stations": [{"id": "1", "name": "A", "zone": "1"}, {"id": "2", "name": "B", "zone": "1"}],
		"lines": [{"id": "L1", "name": "Line 1"}],
		"connections": [{"station1": "1", "station2": "2", "line": "L1", "time": "5"}]}`
	if err := os.WriteFile(p, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	net, err := LoadJSONFile(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net.ConnectionCount() != 1 {
		t.Errorf("expected 1 connection, got %d", net.ConnectionCount())
	}
}
