package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfig_MissingFile tests error handling for missing config
func TestConfig_MissingFile(t *testing.T) {
	origConfig := Config
	origDir, _ := os.Getwd()
	defer func() {
		Config = origConfig
		os.Chdir(origDir)
	}()

	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	err := LoadAppConfig()
	if err == nil {
		t.Fatal("Loading non-existent config should return error")
	}
	if !IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

// TestConfig_LoadFromWorkingDirectory tests that config.yml is picked up from the working directory
func TestConfig_LoadFromWorkingDirectory(t *testing.T) {
	origConfig := Config
	origDir, _ := os.Getwd()
	defer func() {
		Config = origConfig
		os.Chdir(origDir)
	}()

	tmpDir := t.TempDir()
	yml := `server:
  port: 9000
network:
  source: json
  path: testdata/london.json
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yml"), []byte(yml), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("Failed to load config.yml: %v", err)
	}
	if Config.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", Config.Server.Port)
	}
	if Config.Network.Path != "testdata/london.json" {
		t.Errorf("unexpected network path %q", Config.Network.Path)
	}
}

// TestConfig_DotEnvOverrides tests that .env values override config.yml
func TestConfig_DotEnvOverrides(t *testing.T) {
	origConfig := Config
	origDir, _ := os.Getwd()
	defer func() {
		Config = origConfig
		os.Chdir(origDir)
		os.Unsetenv("TUBE_PORT")
	}()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yml"), []byte("server:\n  port: 9000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("TUBE_PORT=9100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".env.local"), []byte("TUBE_PORT=9200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if Config.Server.Port != 9200 {
		t.Errorf("expected .env.local to win with port 9200, got %d", Config.Server.Port)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yml     string
		wantErr bool
		check   func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "empty file gets defaults",
			yml:  "",
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Server.Port != DefaultPort {
					t.Errorf("expected default port, got %d", cfg.Server.Port)
				}
				if cfg.Server.CacheTTLSeconds != DefaultCacheTTLSeconds {
					t.Errorf("expected default cache ttl, got %d", cfg.Server.CacheTTLSeconds)
				}
				if cfg.Network.Source != SourceJSON || cfg.Network.Path != DefaultNetworkPath {
					t.Errorf("unexpected default network %+v", cfg.Network)
				}
			},
		},
		{
			name: "gtfs network",
			yml: `network:
  source: gtfs
  url: https://example.com/gtfs.zip
  agency_id: TFL
  minConnectionMinutes: 2
`,
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Network.Source != SourceGTFS || cfg.Network.AgencyID != "TFL" {
					t.Errorf("unexpected network %+v", cfg.Network)
				}
				if cfg.Network.MinConnectionMinutes != 2 || cfg.Network.DefaultZone != 1 {
					t.Errorf("unexpected gtfs options %+v", cfg.Network)
				}
				if cfg.Network.Path != "" {
					t.Errorf("gtfs network should not get the default json path")
				}
			},
		},
		{
			name: "negative cache ttl disables the cache",
			yml:  "server:\n  cacheTTLSeconds: -1\n",
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Server.CacheTTLSeconds != -1 {
					t.Errorf("expected -1 to be kept, got %d", cfg.Server.CacheTTLSeconds)
				}
			},
		},
		{
			name:    "invalid yaml",
			yml:     "invalid: yaml: content: [[[",
			wantErr: true,
		},
		{
			name:    "unknown source",
			yml:     "network:\n  source: carrier-pigeon\n",
			wantErr: true,
		},
		{
			name:    "bad url",
			yml:     "network:\n  source: gtfs\n  url: not a url\n",
			wantErr: true,
		},
		{
			name:    "port out of range",
			yml:     "server:\n  port: 70000\n",
			wantErr: true,
		},
		{
			name:    "unnamed network",
			yml:     "networks:\n  - source: json\n    path: a.json\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("TUBE_NETWORK_SOURCE", "sqlite")
	t.Setenv("TUBE_NETWORK_PATH", "/data/tube.db")

	cfg, err := Parse([]byte("network:\n  source: json\n  path: a.json\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Network.Source != SourceSQLite || cfg.Network.Path != "/data/tube.db" {
		t.Errorf("environment should override the file, got %+v", cfg.Network)
	}
}

func TestSelectNetwork(t *testing.T) {
	origConfig := Config
	defer func() { Config = origConfig }()

	cfg, err := Parse([]byte(`network:
  path: top.json
networks:
  - name: london
    path: london.json
  - name: paris
    source: sqlite
    path: paris.db
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Config = cfg

	tests := []struct {
		name     string
		wantPath string
	}{
		{name: "paris", wantPath: "paris.db"},
		{name: "london", wantPath: "london.json"},
		{name: "", wantPath: "london.json"},
		{name: "unknown", wantPath: "london.json"},
	}
	for _, tt := range tests {
		if got := SelectNetwork(tt.name); got.Path != tt.wantPath {
			t.Errorf("SelectNetwork(%q).Path = %q, want %q", tt.name, got.Path, tt.wantPath)
		}
	}

	t.Setenv("TUBE_NETWORK_PATH", "/data/override.db")
	if got := SelectNetwork("paris"); got.Path != "/data/override.db" || got.Source != SourceSQLite {
		t.Errorf("environment should override the selected network, got %+v", got)
	}
	os.Unsetenv("TUBE_NETWORK_PATH")

	Config = AppConfig{Network: NetworkConfig{Path: "top.json"}}
	if got := SelectNetwork("london"); got.Path != "top.json" {
		t.Errorf("expected top-level network without named ones, got %q", got.Path)
	}
}
