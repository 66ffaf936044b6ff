package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrDuplicateStation = errors.New("duplicate station id")
	ErrDuplicateLine    = errors.New("duplicate line id")
	ErrUnknownStation   = errors.New("unknown station")
	ErrUnknownLine      = errors.New("unknown line")
	ErrSameStation      = errors.New("connection joins a station to itself")
	ErrInvalidTime      = errors.New("connection time must be positive")
	ErrInvalidZone      = errors.New("invalid zone")
	ErrMissingID        = errors.New("missing id")
)

// Station is a named stop, possibly spanning several fare zones.
type Station struct {
	ID    string
	Name  string
	Zones []int // ascending, never empty
}

// InZone reports whether the station belongs to zone z.
func (s *Station) InZone(z int) bool {
	for _, zone := range s.Zones {
		if zone == z {
			return true
		}
	}
	return false
}

func (s *Station) String() string {
	return fmt.Sprintf("Station(%s, %s, %v)", s.ID, s.Name, s.Zones)
}

// Line is a named service route.
type Line struct {
	ID   string
	Name string
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(%s, %s)", l.ID, l.Name)
}

// Connection is a direct, timed link between two stations on a line.
// The pair is unordered: StationA and StationB carry no direction.
type Connection struct {
	StationA string
	StationB string
	LineID   string
	Time     int // minutes
}

// Stations returns the two station ids joined by the connection.
func (c Connection) Stations() [2]string {
	return [2]string{c.StationA, c.StationB}
}

// Joins reports whether c links a and b, in either order.
func (c Connection) Joins(a, b string) bool {
	return c.StationA == a && c.StationB == b || c.StationA == b && c.StationB == a
}

// Other returns the endpoint opposite to id.
func (c Connection) Other(id string) (string, bool) {
	switch id {
	case c.StationA:
		return c.StationB, true
	case c.StationB:
		return c.StationA, true
	}
	return "", false
}

func (c Connection) String() string {
	return fmt.Sprintf("Connection(%s<->%s, %s, %d)", c.StationA, c.StationB, c.LineID, c.Time)
}

// Network is an immutable snapshot of stations, lines and connections.
// All methods are safe on a nil *Network and behave as on an empty one.
type Network struct {
	SnapshotID uuid.UUID

	stations     map[string]*Station
	stationOrder []*Station
	byName       map[string]*Station
	lines        map[string]*Line
	lineOrder    []*Line
	connections  []Connection
}

// Empty returns a network with no stations, lines or connections.
func Empty() *Network {
	return NewBuilder().Build()
}

// Station returns the station with the given id.
func (n *Network) Station(id string) (*Station, bool) {
	if n == nil {
		return nil, false
	}
	s, ok := n.stations[id]
	return s, ok
}

// StationByName returns the first station, in load order, carrying name.
func (n *Network) StationByName(name string) (*Station, bool) {
	if n == nil {
		return nil, false
	}
	s, ok := n.byName[name]
	return s, ok
}

// Line returns the line with the given id.
func (n *Network) Line(id string) (*Line, bool) {
	if n == nil {
		return nil, false
	}
	l, ok := n.lines[id]
	return l, ok
}

// Stations returns all stations in load order.
func (n *Network) Stations() []*Station {
	if n == nil {
		return nil
	}
	out := make([]*Station, len(n.stationOrder))
	copy(out, n.stationOrder)
	return out
}

// Lines returns all lines in load order.
func (n *Network) Lines() []*Line {
	if n == nil {
		return nil
	}
	out := make([]*Line, len(n.lineOrder))
	copy(out, n.lineOrder)
	return out
}

// Connections returns all connections in load order.
func (n *Network) Connections() []Connection {
	if n == nil {
		return nil
	}
	out := make([]Connection, len(n.connections))
	copy(out, n.connections)
	return out
}

func (n *Network) StationCount() int {
	if n == nil {
		return 0
	}
	return len(n.stationOrder)
}

func (n *Network) LineCount() int {
	if n == nil {
		return 0
	}
	return len(n.lineOrder)
}

func (n *Network) ConnectionCount() int {
	if n == nil {
		return 0
	}
	return len(n.connections)
}

// Builder assembles a Network. A Builder is not safe for concurrent use
// and must not be reused after Build.
type Builder struct {
	net *Network
}

func NewBuilder() *Builder {
	return &Builder{net: &Network{
		stations: map[string]*Station{},
		byName:   map[string]*Station{},
		lines:    map[string]*Line{},
	}}
}

// SetSnapshotID keeps a previously assigned snapshot id, e.g. when a
// network is restored from a store. Build assigns a fresh one otherwise.
func (b *Builder) SetSnapshotID(id uuid.UUID) {
	b.net.SnapshotID = id
}

// AddStation registers a station. Zones are deduplicated and sorted.
func (b *Builder) AddStation(id, name string, zones ...int) error {
	if id == "" {
		return fmt.Errorf("station %q: %w", name, ErrMissingID)
	}
	if _, ok := b.net.stations[id]; ok {
		return fmt.Errorf("station %s: %w", id, ErrDuplicateStation)
	}
	if len(zones) == 0 {
		return fmt.Errorf("station %s: %w: no zone", id, ErrInvalidZone)
	}
	set := make(map[int]struct{}, len(zones))
	norm := make([]int, 0, len(zones))
	for _, z := range zones {
		if z < 0 {
			return fmt.Errorf("station %s: %w: %d", id, ErrInvalidZone, z)
		}
		if _, dup := set[z]; dup {
			continue
		}
		set[z] = struct{}{}
		norm = append(norm, z)
	}
	sort.Ints(norm)
	s := &Station{ID: id, Name: name, Zones: norm}
	b.net.stations[id] = s
	b.net.stationOrder = append(b.net.stationOrder, s)
	if _, taken := b.net.byName[name]; !taken {
		b.net.byName[name] = s
	}
	return nil
}

func (b *Builder) AddLine(id, name string) error {
	if id == "" {
		return fmt.Errorf("line %q: %w", name, ErrMissingID)
	}
	if _, ok := b.net.lines[id]; ok {
		return fmt.Errorf("line %s: %w", id, ErrDuplicateLine)
	}
	l := &Line{ID: id, Name: name}
	b.net.lines[id] = l
	b.net.lineOrder = append(b.net.lineOrder, l)
	return nil
}

// AddConnection links two registered stations on a registered line.
// Both stations and the line must already be present.
func (b *Builder) AddConnection(stationA, stationB, lineID string, minutes int) error {
	c, err := b.newConnection(stationA, stationB, lineID, minutes)
	if err != nil {
		return err
	}
	b.net.connections = append(b.net.connections, c)
	return nil
}

func (b *Builder) newConnection(stationA, stationB, lineID string, minutes int) (Connection, error) {
	if _, ok := b.net.stations[stationA]; !ok {
		return Connection{}, fmt.Errorf("connection %s<->%s: %w: %q", stationA, stationB, ErrUnknownStation, stationA)
	}
	if _, ok := b.net.stations[stationB]; !ok {
		return Connection{}, fmt.Errorf("connection %s<->%s: %w: %q", stationA, stationB, ErrUnknownStation, stationB)
	}
	if stationA == stationB {
		return Connection{}, fmt.Errorf("connection %s<->%s: %w", stationA, stationB, ErrSameStation)
	}
	if _, ok := b.net.lines[lineID]; !ok {
		return Connection{}, fmt.Errorf("connection %s<->%s: %w: %q", stationA, stationB, ErrUnknownLine, lineID)
	}
	if minutes <= 0 {
		return Connection{}, fmt.Errorf("connection %s<->%s: %w: %d", stationA, stationB, ErrInvalidTime, minutes)
	}
	return Connection{StationA: stationA, StationB: stationB, LineID: lineID, Time: minutes}, nil
}

// Build returns the finished network.
func (b *Builder) Build() *Network {
	n := b.net
	b.net = nil
	if n.SnapshotID == uuid.Nil {
		n.SnapshotID = uuid.New()
	}
	return n
}
