package source

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/tube-pathfinder/config"
	"github.com/theoremus-urban-solutions/tube-pathfinder/gtfs"
	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
	"github.com/theoremus-urban-solutions/tube-pathfinder/store"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 60 * time.Second

var defaultClient = NewClient(DefaultTimeout)

// Load reads the network described by cfg.
func Load(ctx context.Context, cfg config.NetworkConfig) (*network.Network, error) {
	return defaultClient.Load(ctx, cfg)
}

// Load reads the network described by cfg using c for downloads.
func (c *Client) Load(ctx context.Context, cfg config.NetworkConfig) (*network.Network, error) {
	start := time.Now()
	net, err := c.load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s network: %w", sourceKind(cfg), err)
	}
	log.Printf("Loaded %s network %s (%d stations, %d lines, %d connections) in %v",
		sourceKind(cfg), net.SnapshotID, net.StationCount(), net.LineCount(), net.ConnectionCount(), time.Since(start))
	return net, nil
}

func (c *Client) load(ctx context.Context, cfg config.NetworkConfig) (*network.Network, error) {
	switch sourceKind(cfg) {
	case config.SourceJSON:
		if cfg.URL == "" {
			return network.LoadJSONFile(cfg.Path)
		}
		data, err := c.Fetch(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return network.LoadJSON(bytes.NewReader(data))
	case config.SourceGTFS:
		data, err := c.Fetch(ctx, location(cfg))
		if err != nil {
			return nil, err
		}
		return gtfs.LoadNetworkFromBytes(data, gtfs.Options{
			AgencyID:             cfg.AgencyID,
			MinConnectionMinutes: cfg.MinConnectionMinutes,
			DefaultZone:          cfg.DefaultZone,
		})
	case config.SourceSnapshot:
		data, err := c.Fetch(ctx, location(cfg))
		if err != nil {
			return nil, err
		}
		return store.DeserializeNetwork(data)
	case config.SourceSQLite:
		s, err := store.OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.LoadNetwork(ctx)
	case config.SourcePostgres:
		s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.LoadNetwork(ctx)
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}

// OpenStore opens the writable store named by cfg. Only sqlite and
// postgres sources are stores.
func OpenStore(ctx context.Context, cfg config.NetworkConfig) (store.Store, error) {
	switch sourceKind(cfg) {
	case config.SourceSQLite:
		return store.OpenSQLite(ctx, cfg.Path)
	case config.SourcePostgres:
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("source %q is not a store", cfg.Source)
}

func sourceKind(cfg config.NetworkConfig) string {
	if cfg.Source == "" {
		return config.SourceJSON
	}
	return cfg.Source
}

// location prefers the URL over the local path.
func location(cfg config.NetworkConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return cfg.Path
}
