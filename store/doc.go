/*
Package store persists tube networks.

Three backends are provided:

  - gob snapshots (SerializeNetwork, DeserializeNetworkFromFile) for fast
    restarts without re-parsing a GTFS feed
  - SQLiteStore, backed by modernc.org/sqlite
  - PostgresStore, backed by pgx

SQLiteStore and PostgresStore share schema.sql and implement Store. Each
keeps exactly one network; SaveNetwork replaces it. Load order and the
snapshot id survive a round trip.
*/
package store
