// Package path finds the minimum-time route between two named stations
// over a graph.Index using Dijkstra's algorithm.
package path

import (
	"container/heap"
	"strings"

	"github.com/theoremus-urban-solutions/tube-pathfinder/graph"
	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// StationLookup resolves station names and ids. *network.Network
// satisfies it.
type StationLookup interface {
	StationByName(name string) (*network.Station, bool)
	Station(id string) (*network.Station, bool)
}

// Path is an ordered sequence of stations from start to end, inclusive.
type Path []*network.Station

// Names returns the station names along the path.
func (p Path) Names() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Name
	}
	return out
}

func (p Path) String() string {
	return strings.Join(p.Names(), " -> ")
}

// ShortestPath returns one minimum-time path between the stations named
// start and end. It reports false when either name is unknown or no
// route joins the two stations. When both names resolve to the same
// station the path holds just that station.
func ShortestPath(idx graph.Index, lookup StationLookup, start, end string) (Path, bool) {
	q := query(idx, lookup, start, end)
	return q.path, q.outcome == OutcomeFound || q.outcome == OutcomeSameStation
}

type result struct {
	outcome Outcome
	path    Path
}

func query(idx graph.Index, lookup StationLookup, start, end string) result {
	if lookup == nil {
		return result{outcome: OutcomeUnknownStation}
	}
	from, ok := lookup.StationByName(start)
	if !ok {
		return result{outcome: OutcomeUnknownStation}
	}
	to, ok := lookup.StationByName(end)
	if !ok {
		return result{outcome: OutcomeUnknownStation}
	}
	if from.ID == to.ID {
		return result{outcome: OutcomeSameStation, path: Path{from}}
	}

	prev := search(idx, from.ID, to.ID)
	ids, ok := walkBack(prev, from.ID, to.ID)
	if !ok {
		return result{outcome: OutcomeNoRoute}
	}
	p := make(Path, 0, len(ids))
	for _, id := range ids {
		s, ok := lookup.Station(id)
		if !ok {
			return result{outcome: OutcomeNoRoute}
		}
		p = append(p, s)
	}
	return result{outcome: OutcomeFound, path: p}
}

// search runs Dijkstra from origin and stops once destination is popped.
// It returns the predecessor of every station reached.
func search(idx graph.Index, origin, destination string) map[string]string {
	prev := map[string]string{}
	// stations missing from dist are at infinite distance
	dist := map[string]int{origin: 0}

	pq := &frontier{}
	heap.Push(pq, frontierItem{stationID: origin, distance: 0})
	seq := 1

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if cur.stationID == destination {
			break
		}
		if cur.distance > dist[cur.stationID] {
			// stale: a shorter distance was pushed after this one
			continue
		}
		for _, next := range idx.NeighbourIDs(cur.stationID) {
			weight, ok := idx.Weight(cur.stationID, next)
			if !ok {
				continue
			}
			d := cur.distance + weight
			if best, seen := dist[next]; seen && d >= best {
				continue
			}
			dist[next] = d
			prev[next] = cur.stationID
			heap.Push(pq, frontierItem{stationID: next, distance: d, seq: seq})
			seq++
		}
	}
	return prev
}

// walkBack follows predecessors from destination and returns the ids in
// origin-to-destination order. It fails if the walk never reaches origin.
func walkBack(prev map[string]string, origin, destination string) ([]string, bool) {
	ids := []string{destination}
	for cur := destination; cur != origin; {
		p, ok := prev[cur]
		if !ok || len(ids) > len(prev)+1 {
			return nil, false
		}
		ids = append(ids, p)
		cur = p
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, true
}
