package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// PostgresStore keeps a network in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates tables if they don't exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveNetwork replaces the stored network with net in one transaction.
func (s *PostgresStore) SaveNetwork(ctx context.Context, net *network.Network) error {
	snap := FromNetwork(net)
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE connections, lines, stations, network_meta`); err != nil {
		return fmt.Errorf("failed to clear network: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO network_meta (key, value) VALUES ('snapshot_id', $1)`, snap.ID.String()); err != nil {
		return fmt.Errorf("failed to save snapshot id: %w", err)
	}

	stationRows := make([][]any, len(snap.Stations))
	for i, st := range snap.Stations {
		stationRows[i] = []any{i, st.ID, st.Name, formatZones(st.Zones)}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"stations"}, []string{"position", "id", "name", "zones"}, pgx.CopyFromRows(stationRows)); err != nil {
		return fmt.Errorf("failed to save stations: %w", err)
	}

	lineRows := make([][]any, len(snap.Lines))
	for i, l := range snap.Lines {
		lineRows[i] = []any{i, l.ID, l.Name}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"lines"}, []string{"position", "id", "name"}, pgx.CopyFromRows(lineRows)); err != nil {
		return fmt.Errorf("failed to save lines: %w", err)
	}

	connRows := make([][]any, len(snap.Connections))
	for i, c := range snap.Connections {
		connRows[i] = []any{i, c.StationA, c.StationB, c.LineID, c.Time}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"connections"}, []string{"position", "station_a", "station_b", "line_id", "minutes"}, pgx.CopyFromRows(connRows)); err != nil {
		return fmt.Errorf("failed to save connections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// LoadNetwork reads the stored network. It returns ErrEmpty when nothing
// has been saved.
func (s *PostgresStore) LoadNetwork(ctx context.Context) (*network.Network, error) {
	var snap Snapshot

	var id string
	err := s.pool.QueryRow(ctx, `SELECT value FROM network_meta WHERE key = 'snapshot_id'`).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrEmpty
	case err != nil:
		return nil, fmt.Errorf("failed to query snapshot id: %w", err)
	}
	if parsed, err := uuid.Parse(id); err == nil {
		snap.ID = parsed
	}

	rows, err := s.pool.Query(ctx, `SELECT id, name, zones FROM stations ORDER BY position`)
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

	rows, err = s.pool.Query(ctx, `SELECT id, name FROM lines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	snap.Lines, err = pgx.CollectRows(rows, pgx.RowToStructByPos[LineRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	rows, err = s.pool.Query(ctx, `SELECT station_a, station_b, line_id, minutes FROM connections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	snap.Connections, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (network.Connection, error) {
		var c network.Connection
		err := row.Scan(&c.StationA, &c.StationB, &c.LineID, &c.Time)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read connections: %w", err)
	}

	return snap.Network()
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
