package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// schemaSQL is shared by the SQLite and PostgreSQL stores.
//
//go:embed schema.sql
var schemaSQL string

// ErrEmpty is returned when a store holds no network yet.
var ErrEmpty = errors.New("store holds no network")

// Store persists a single network.
type Store interface {
	SaveNetwork(ctx context.Context, net *network.Network) error
	LoadNetwork(ctx context.Context) (*network.Network, error)
	Close() error
}

// SQLiteStore keeps a network in a SQLite database file.
type SQLiteStore struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// OpenSQLite opens a SQLite database with WAL mode enabled and ensures the schema.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	// _pragma parameters are applied by the driver on every new connection
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection serializes writers
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			log.Printf("Warning: failed to set %s: %v", pragma, err)
		}
	}

	s := &SQLiteStore{conn: conn}
	if err := s.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("Connected to SQLite database: %s", dbPath)
	return s, nil
}

// EnsureSchema creates tables if they don't exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveNetwork replaces the stored network with net in one transaction.
func (s *SQLiteStore) SaveNetwork(ctx context.Context, net *network.Network) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := FromNetwork(net)
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"connections", "lines", "stations", "network_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO network_meta (key, value) VALUES ('snapshot_id', ?)`, snap.ID.String()); err != nil {
		return fmt.Errorf("failed to save snapshot id: %w", err)
	}
	for i, st := range snap.Stations {
		if _, err := tx.ExecContext(ctx, `INSERT INTO stations (position, id, name, zones) VALUES (?, ?, ?, ?)`,
			i, st.ID, st.Name, formatZones(st.Zones)); err != nil {
			return fmt.Errorf("failed to save station %s: %w", st.ID, err)
		}
	}
	for i, l := range snap.Lines {
		if _, err := tx.ExecContext(ctx, `INSERT INTO lines (position, id, name) VALUES (?, ?, ?)`, i, l.ID, l.Name); err != nil {
			return fmt.Errorf("failed to save line %s: %w", l.ID, err)
		}
	}
	for i, c := range snap.Connections {
		if _, err := tx.ExecContext(ctx, `INSERT INTO connections (position, station_a, station_b, line_id, minutes) VALUES (?, ?, ?, ?, ?)`,
			i, c.StationA, c.StationB, c.LineID, c.Time); err != nil {
			return fmt.Errorf("failed to save connection %s: %w", c, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// LoadNetwork reads the stored network. It returns ErrEmpty when nothing
// has been saved.
func (s *SQLiteStore) LoadNetwork(ctx context.Context) (*network.Network, error) {
	var snap Snapshot

	var id string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM network_meta WHERE key = 'snapshot_id'`).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrEmpty
	case err != nil:
		return nil, fmt.Errorf("failed to query snapshot id: %w", err)
	}
	if parsed, err := uuid.Parse(id); err == nil {
		snap.ID = parsed
	}

	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, zones FROM stations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	for rows.Next() {
		var st StationRecord
		var zones string
		if err := rows.Scan(&st.ID, &st.Name, &zones); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		if st.Zones, err = parseZones(zones); err != nil {
			rows.Close()
			return nil, fmt.Errorf("station %s: %w", st.ID, err)
		}
		snap.Stations = append(snap.Stations, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}

	rows, err = s.conn.QueryContext(ctx, `SELECT id, name FROM lines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	for rows.Next() {
		var l LineRecord
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		snap.Lines = append(snap.Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	rows, err = s.conn.QueryContext(ctx, `SELECT station_a, station_b, line_id, minutes FROM connections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	for rows.Next() {
		var c network.Connection
		if err := rows.Scan(&c.StationA, &c.StationB, &c.LineID, &c.Time); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		snap.Connections = append(snap.Connections, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read connections: %w", err)
	}

	return snap.Network()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
