package config

// Network source kinds
const (
	SourceJSON     = "json"
	SourceGTFS     = "gtfs"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceSnapshot = "snapshot"
)

// ServerConfig contains server configuration
type ServerConfig struct {
	Port            int      `yaml:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
	// 0 means the default; a negative value disables the route cache
	CacheTTLSeconds int      `yaml:"cacheTTLSeconds"`
}

// NetworkConfig describes where a transit network is loaded from
type NetworkConfig struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source" validate:"omitempty,oneof=json gtfs sqlite postgres snapshot"`
	Path        string `yaml:"path"`
	URL         string `yaml:"url" validate:"omitempty,url"`
	AgencyID    string `yaml:"agency_id"`
	DatabaseURL string `yaml:"databaseURL"`
	// GTFS only
	MinConnectionMinutes int `yaml:"minConnectionMinutes" validate:"gte=0"`
	DefaultZone          int `yaml:"defaultZone" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Network  NetworkConfig   `yaml:"network"`
	Networks []NetworkConfig `yaml:"networks"`
}
