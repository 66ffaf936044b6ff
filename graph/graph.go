// Package graph turns the flat connection list of a network into an
// undirected multi-edge adjacency index.
package graph

import (
	"sort"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// Source is what Build reads from. *network.Network satisfies it.
type Source interface {
	Station(id string) (*network.Station, bool)
	Connections() []network.Connection
}

// Neighbours maps a neighbour station id to the connections joining it
// to the owning station, in the order they were encountered.
type Neighbours map[string][]network.Connection

// Index maps a station id to its neighbours. It is symmetric: a
// connection between A and B is filed under both Index[A][B] and
// Index[B][A]. An Index is never mutated after Build returns.
type Index map[string]Neighbours

// Build indexes every connection of src that joins exactly two distinct
// stations known to src. Other connections are skipped. A nil source
// yields an empty index.
func Build(src Source) Index {
	idx := Index{}
	if src == nil {
		return idx
	}
	if n, ok := src.(*network.Network); ok && n == nil {
		return idx
	}
	for _, c := range src.Connections() {
		if !joinsTwoStations(src, c) {
			continue
		}
		idx.add(c.StationA, c.StationB, c)
		idx.add(c.StationB, c.StationA, c)
	}
	return idx
}

func joinsTwoStations(src Source, c network.Connection) bool {
	if c.StationA == "" || c.StationB == "" || c.StationA == c.StationB {
		return false
	}
	if _, ok := src.Station(c.StationA); !ok {
		return false
	}
	_, ok := src.Station(c.StationB)
	return ok
}

func (idx Index) add(from, to string, c network.Connection) {
	nb, ok := idx[from]
	if !ok {
		nb = Neighbours{}
		idx[from] = nb
	}
	nb[to] = append(nb[to], c)
}

// NeighbourIDs returns the neighbours of id in ascending order.
func (idx Index) NeighbourIDs(id string) []string {
	nb := idx[id]
	out := make([]string, 0, len(nb))
	for k := range nb {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Connections returns the connections joining a and b.
func (idx Index) Connections(a, b string) []network.Connection {
	return idx[a][b]
}

// Fastest returns the quickest connection joining a and b. Among equally
// fast connections the first one encountered wins.
func (idx Index) Fastest(a, b string) (network.Connection, bool) {
	conns := idx[a][b]
	if len(conns) == 0 {
		return network.Connection{}, false
	}
	best := conns[0]
	for _, c := range conns[1:] {
		if c.Time < best.Time {
			best = c
		}
	}
	return best, true
}

// Weight is the time of the fastest connection joining a and b.
func (idx Index) Weight(a, b string) (int, bool) {
	c, ok := idx.Fastest(a, b)
	return c.Time, ok
}

// EntryCount sums the bucket lengths over both directions of every pair.
func (idx Index) EntryCount() int {
	n := 0
	for _, nb := range idx {
		for _, conns := range nb {
			n += len(conns)
		}
	}
	return n
}

// ConnectionCount is the number of indexed connections.
func (idx Index) ConnectionCount() int {
	return idx.EntryCount() / 2
}

// Equal reports whether both indices hold the same connections in the
// same bucket order.
func (idx Index) Equal(other Index) bool {
	if len(idx) != len(other) {
		return false
	}
	for id, nb := range idx {
		onb, ok := other[id]
		if !ok || len(nb) != len(onb) {
			return false
		}
		for to, conns := range nb {
			oconns, ok := onb[to]
			if !ok || len(conns) != len(oconns) {
				return false
			}
			for i := range conns {
				if conns[i] != oconns[i] {
					return false
				}
			}
		}
	}
	return true
}
