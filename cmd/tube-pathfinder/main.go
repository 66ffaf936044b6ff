package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	lib "github.com/theoremus-urban-solutions/tube-pathfinder"
	"github.com/theoremus-urban-solutions/tube-pathfinder/config"
	"github.com/theoremus-urban-solutions/tube-pathfinder/formatter"
	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
	"github.com/theoremus-urban-solutions/tube-pathfinder/path"
	"github.com/theoremus-urban-solutions/tube-pathfinder/source"
	"github.com/theoremus-urban-solutions/tube-pathfinder/store"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve|import")
	configPath := flag.String("config", "", "config file (default: config.yml)")
	networkName := flag.String("network", "", "network name from config.networks[]")
	jsonPath := flag.String("json", "", "JSON tube map path or URL (overrides config)")
	gtfsPath := flag.String("gtfs", "", "GTFS zip path or URL (overrides config)")
	agency := flag.String("agency", "", "GTFS agency_id filter")
	from := flag.String("from", "", "start station name")
	to := flag.String("to", "", "destination station name")
	format := flag.String("format", "text", "text|json|xml")
	sqlitePath := flag.String("sqlite", "", "import: SQLite database to write")
	postgresURL := flag.String("postgres", "", "import: PostgreSQL URL to write")
	out := flag.String("out", "", "import: gob snapshot file to write")
	flag.Parse()

	lib.InitLogging(os.Stderr)
	if err := loadConfig(*configPath); err != nil {
		log.Fatalf("config: %v", err)
	}

	netCfg := config.SelectNetwork(*networkName)
	netCfg = applyFlags(netCfg, *jsonPath, *gtfsPath, *agency)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	net, err := source.Load(ctx, netCfg)
	cancel()
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch *mode {
	case "oneshot":
		if err := oneshot(net, *from, *to, *format); err != nil {
			log.Fatalf("%v", err)
		}
	case "serve":
		loader := func(ctx context.Context) (*network.Network, error) {
			return source.Load(ctx, netCfg)
		}
		ttl := time.Duration(config.Config.Server.CacheTTLSeconds) * time.Second
		svc := lib.NewService(net, loader, ttl)
		svc.StartServer(config.Config.Server)
		svc.HandleGracefulShutdown()
	case "import":
		if err := importNetwork(net, *sqlitePath, *postgresURL, *out); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// loadConfig falls back to defaults and environment when no config file exists.
func loadConfig(path string) error {
	var err error
	if path != "" {
		err = config.LoadAppConfigFrom(path)
	} else {
		err = config.LoadAppConfig()
	}
	if err != nil && config.IsNotExist(err) && path == "" {
		log.Printf("no config.yml found, using defaults")
		config.Config = config.Default()
		return nil
	}
	return err
}

func applyFlags(cfg config.NetworkConfig, jsonPath, gtfsPath, agency string) config.NetworkConfig {
	switch {
	case jsonPath != "":
		cfg = config.NetworkConfig{Name: cfg.Name, Source: config.SourceJSON}
		setLocation(&cfg, jsonPath)
	case gtfsPath != "":
		cfg = config.NetworkConfig{
			Name:                 cfg.Name,
			Source:               config.SourceGTFS,
			AgencyID:             cfg.AgencyID,
			MinConnectionMinutes: cfg.MinConnectionMinutes,
			DefaultZone:          cfg.DefaultZone,
		}
		setLocation(&cfg, gtfsPath)
	}
	if agency != "" {
		cfg.AgencyID = agency
	}
	return cfg
}

func setLocation(cfg *config.NetworkConfig, urlOrPath string) {
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		cfg.URL = urlOrPath
		return
	}
	cfg.Path = urlOrPath
}

func oneshot(net *network.Network, from, to, format string) error {
	if from == "" || to == "" {
		return fmt.Errorf("oneshot needs -from and -to")
	}
	route := path.NewFinder(net).Route(from, to)
	rb := formatter.NewResponseBuilder()
	switch format {
	case "json":
		fmt.Println(string(rb.BuildJSON(formatter.WrapRoute(route, from, to, net, time.Now()))))
	case "xml":
		fmt.Println(string(rb.BuildRouteXML(formatter.WrapRoute(route, from, to, net, time.Now()))))
	case "text":
		fmt.Print(formatter.Text(route, from, to))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if !route.Found() {
		os.Exit(2)
	}
	return nil
}

func importNetwork(net *network.Network, sqlitePath, postgresURL, out string) error {
	if sqlitePath == "" && postgresURL == "" && out == "" {
		return fmt.Errorf("import needs -sqlite, -postgres or -out")
	}
	ctx := context.Background()
	if out != "" {
		if err := store.SerializeNetworkToFile(net, out); err != nil {
			return err
		}
		log.Printf("wrote snapshot %s to %s", net.SnapshotID, out)
	}
	targets := []config.NetworkConfig{}
	if sqlitePath != "" {
		targets = append(targets, config.NetworkConfig{Source: config.SourceSQLite, Path: sqlitePath})
	}
	if postgresURL != "" {
		targets = append(targets, config.NetworkConfig{Source: config.SourcePostgres, DatabaseURL: postgresURL})
	}
	for _, t := range targets {
		s, err := source.OpenStore(ctx, t)
		if err != nil {
			return err
		}
		err = s.SaveNetwork(ctx, net)
		s.Close()
		if err != nil {
			return err
		}
		log.Printf("saved network %s to %s store", net.SnapshotID, t.Source)
	}
	return nil
}
