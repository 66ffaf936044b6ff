package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/tube-pathfinder/config"
	"github.com/theoremus-urban-solutions/tube-pathfinder/internal/testnet"
	"github.com/theoremus-urban-solutions/tube-pathfinder/source"
)

func TestApplyFlags(t *testing.T) {
	base := config.NetworkConfig{Name: "london", Source: config.SourceSQLite, Path: "tube.db", DefaultZone: 2}

	tests := []struct {
		name                  string
		json, gtfs, agency    string
		wantSource, wantPath  string
		wantURL, wantAgencyID string
	}{
		{name: "no flags", wantSource: config.SourceSQLite, wantPath: "tube.db"},
		{name: "json path", json: "data/london.json", wantSource: config.SourceJSON, wantPath: "data/london.json"},
		{name: "gtfs url", gtfs: "https://example.com/gtfs.zip", agency: "TFL", wantSource: config.SourceGTFS, wantURL: "https://example.com/gtfs.zip", wantAgencyID: "TFL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFlags(base, tt.json, tt.gtfs, tt.agency)
			if got.Source != tt.wantSource || got.Path != tt.wantPath || got.URL != tt.wantURL || got.AgencyID != tt.wantAgencyID {
				t.Errorf("unexpected config %+v", got)
			}
			if got.Name != "london" {
				t.Errorf("network name should be kept, got %q", got.Name)
			}
		})
	}
}

func TestImportNetwork(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tube.db")
	gobPath := filepath.Join(dir, "tube.gob")
	net := testnet.London(t)

	if err := importNetwork(net, dbPath, "", gobPath); err != nil {
		t.Fatalf("importNetwork failed: %v", err)
	}

	for _, cfg := range []config.NetworkConfig{
		{Source: config.SourceSQLite, Path: dbPath},
		{Source: config.SourceSnapshot, Path: gobPath},
	} {
		got, err := source.Load(context.Background(), cfg)
		if err != nil {
			t.Fatalf("loading %s failed: %v", cfg.Source, err)
		}
		if got.SnapshotID != net.SnapshotID || got.StationCount() != net.StationCount() {
			t.Errorf("%s: imported network differs", cfg.Source)
		}
	}

	if err := importNetwork(net, "", "", ""); err == nil {
		t.Error("expected an error without targets")
	}
}

func TestOneshot_MissingStations(t *testing.T) {
	if err := oneshot(testnet.ABC(t), "", "C", "text"); err == nil {
		t.Error("expected an error without -from")
	}
	if err := oneshot(testnet.ABC(t), "A", "C", "yaml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
