// Package source loads a tube network from the location named by a
// config.NetworkConfig: a JSON tube map, a GTFS zip, a gob snapshot, or
// a SQLite or PostgreSQL store. Files may be local paths or HTTP URLs.
package source
