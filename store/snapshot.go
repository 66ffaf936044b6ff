package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// StationRecord is the persisted form of a station.
type StationRecord struct {
	ID    string
	Name  string
	Zones []int
}

// LineRecord is the persisted form of a line.
type LineRecord struct {
	ID   string
	Name string
}

// Snapshot is a flat, ordered copy of a network. Every store reads and
// writes networks through it.
type Snapshot struct {
	ID          uuid.UUID
	Stations    []StationRecord
	Lines       []LineRecord
	Connections []network.Connection
}

// FromNetwork flattens net into a snapshot, keeping load order.
func FromNetwork(net *network.Network) Snapshot {
	s := Snapshot{}
	if net == nil {
		return s
	}
	s.ID = net.SnapshotID
	for _, st := range net.Stations() {
		zones := make([]int, len(st.Zones))
		copy(zones, st.Zones)
		s.Stations = append(s.Stations, StationRecord{ID: st.ID, Name: st.Name, Zones: zones})
	}
	for _, l := range net.Lines() {
		s.Lines = append(s.Lines, LineRecord{ID: l.ID, Name: l.Name})
	}
	s.Connections = net.Connections()
	return s
}

// Network rebuilds the network. The snapshot id is kept so caches keyed
// by it stay valid across a save and load.
func (s Snapshot) Network() (*network.Network, error) {
	b := network.NewBuilder()
	b.SetSnapshotID(s.ID)
	for _, st := range s.Stations {
		if err := b.AddStation(st.ID, st.Name, st.Zones...); err != nil {
			return nil, fmt.Errorf("failed to restore station: %w", err)
		}
	}
	for _, l := range s.Lines {
		if err := b.AddLine(l.ID, l.Name); err != nil {
			return nil, fmt.Errorf("failed to restore line: %w", err)
		}
	}
	for _, c := range s.Connections {
		if err := b.AddConnection(c.StationA, c.StationB, c.LineID, c.Time); err != nil {
			return nil, fmt.Errorf("failed to restore connection: %w", err)
		}
	}
	return b.Build(), nil
}

// SerializeNetwork encodes a network to bytes using gob encoding.
// Use it to cache a parsed GTFS feed on disk.
//
// Example:
//
//	net, _ := gtfs.LoadNetworkFromFile("gtfs.zip", gtfs.Options{})
//	data, err := store.SerializeNetwork(net)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/path/to/cache/network.gob", data, 0644)
func SerializeNetwork(net *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeNetworkToWriter(net, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeNetwork decodes a network from bytes using gob encoding.
func DeserializeNetwork(data []byte) (*network.Network, error) {
	return DeserializeNetworkFromReader(bytes.NewReader(data))
}

// SerializeNetworkToFile writes a network to a file using gob encoding.
func SerializeNetworkToFile(net *network.Network, filepath string) error {
	data, err := SerializeNetwork(net)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// DeserializeNetworkFromFile reads a network from a gob file.
//
// Example:
//
//	net, err := store.DeserializeNetworkFromFile("/cache/network.gob")
//	if err != nil {
//	    // Cache miss or corrupted, parse the feed again
//	    net, _ = gtfs.LoadNetworkFromFile("gtfs.zip", gtfs.Options{})
//	}
func DeserializeNetworkFromFile(filepath string) (*network.Network, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return DeserializeNetwork(data)
}

// SerializeNetworkToWriter writes a network to an io.Writer using gob encoding.
func SerializeNetworkToWriter(net *network.Network, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(FromNetwork(net)); err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	return nil
}

// DeserializeNetworkFromReader reads a network from an io.Reader using gob encoding.
func DeserializeNetworkFromReader(r io.Reader) (*network.Network, error) {
	var s Snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode network: %w", err)
	}
	return s.Network()
}

func formatZones(zones []int) string {
	parts := make([]string, len(zones))
	for i, z := range zones {
		parts[i] = strconv.Itoa(z)
	}
	return strings.Join(parts, ",")
}

func parseZones(s string) ([]int, error) {
	var zones []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		z, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid zones %q: %w", s, err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}
