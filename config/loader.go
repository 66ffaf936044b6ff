package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = 8080
	DefaultCacheTTLSeconds = 60
	DefaultNetworkPath     = "data/london.json"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads .env files, then loads and validates config.yml
func LoadAppConfig() error {
	loadDotEnv()
	paths := []string{"config.yml", "./golang/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// LoadAppConfigFrom loads and validates the configuration at path
func LoadAppConfigFrom(path string) error {
	loadDotEnv()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes YAML, applies environment overrides and defaults, then validates
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config.yml exists
func Default() AppConfig {
	var cfg AppConfig
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg
}

// Validate checks struct tags of every section
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Network); err != nil {
		return err
	}
	// named networks are optional; if present validate each
	for i, n := range cfg.Networks {
		if n.Name == "" {
			return fmt.Errorf("networks[%d]: name is required", i)
		}
		if err := v.Struct(n); err != nil {
			return fmt.Errorf("networks[%d] %s: %w", i, n.Name, err)
		}
	}
	return nil
}

// SelectNetwork chooses a network by name; fallback to first; if none, use top-level network.
// TUBE_NETWORK_* environment overrides apply to whichever entry is chosen.
func SelectNetwork(name string) NetworkConfig {
	var n NetworkConfig
	switch {
	case name != "" && findNetwork(name, &n):
	case len(Config.Networks) > 0:
		n = Config.Networks[0]
	default:
		n = Config.Network
	}
	if name != "" && n.Name != name {
		log.Printf("Warning: network %q not found in config, using %q", name, n.Name)
	}
	applyNetworkEnv(&n)
	return n
}

func findNetwork(name string, out *NetworkConfig) bool {
	for _, n := range Config.Networks {
		if n.Name == name {
			*out = n
			return true
		}
	}
	return false
}

// loadDotEnv loads .env, then lets .env.local override it. Both are optional.
func loadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("TUBE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	applyNetworkEnv(&cfg.Network)
}

func applyNetworkEnv(n *NetworkConfig) {
	if v := os.Getenv("TUBE_NETWORK_SOURCE"); v != "" {
		n.Source = v
	}
	if v := os.Getenv("TUBE_NETWORK_PATH"); v != "" {
		n.Path = v
	}
	if v := os.Getenv("TUBE_NETWORK_URL"); v != "" {
		n.URL = v
	}
	if v := os.Getenv("TUBE_DATABASE_URL"); v != "" {
		n.DatabaseURL = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.CacheTTLSeconds == 0 {
		cfg.Server.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	networkDefaults(&cfg.Network)
	for i := range cfg.Networks {
		networkDefaults(&cfg.Networks[i])
	}
}

func networkDefaults(n *NetworkConfig) {
	if n.Source == "" {
		n.Source = SourceJSON
	}
	if n.Source == SourceJSON && n.Path == "" && n.URL == "" {
		n.Path = DefaultNetworkPath
	}
	if n.MinConnectionMinutes == 0 {
		n.MinConnectionMinutes = 1
	}
	if n.DefaultZone == 0 {
		n.DefaultZone = 1
	}
}

// IsNotExist reports whether err means no config file was found
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
