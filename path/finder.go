package path

import (
	"github.com/theoremus-urban-solutions/tube-pathfinder/graph"
	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// Outcome is the terminal state of a route query.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeSameStation
	OutcomeUnknownStation
	OutcomeNoRoute
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeSameStation:
		return "same_station"
	case OutcomeUnknownStation:
		return "unknown_station"
	case OutcomeNoRoute:
		return "no_route"
	}
	return "invalid"
}

// Leg is one hop of a route, travelled on the fastest connection
// between its two stations.
type Leg struct {
	From *network.Station
	To   *network.Station
	Line *network.Line
	Time int
}

// Route is a path enriched with per-hop details.
type Route struct {
	Outcome   Outcome
	Stations  Path
	Legs      []Leg
	TotalTime int
}

// Found reports whether the route holds a path.
func (r Route) Found() bool {
	return r.Outcome == OutcomeFound || r.Outcome == OutcomeSameStation
}

// Finder answers route queries over one network. The adjacency index is
// built once in NewFinder. A Finder is immutable and safe for concurrent
// use; load a new network into a new Finder instead of changing one.
type Finder struct {
	net   *network.Network
	index graph.Index
}

// NewFinder indexes net. A nil network behaves as an empty one.
func NewFinder(net *network.Network) *Finder {
	if net == nil {
		net = network.Empty()
	}
	return &Finder{net: net, index: graph.Build(net)}
}

func (f *Finder) Network() *network.Network { return f.net }

func (f *Finder) Index() graph.Index { return f.index }

// ShortestPath is ShortestPath over the finder's network.
func (f *Finder) ShortestPath(start, end string) (Path, bool) {
	return ShortestPath(f.index, f.net, start, end)
}

// Route runs the same query as ShortestPath and also reports why no path
// was found, the line and time of every leg and the total time.
func (f *Finder) Route(start, end string) Route {
	q := query(f.index, f.net, start, end)
	r := Route{Outcome: q.outcome, Stations: q.path}
	if q.outcome != OutcomeFound {
		return r
	}
	r.Legs = make([]Leg, 0, len(q.path)-1)
	for i := 1; i < len(q.path); i++ {
		from, to := q.path[i-1], q.path[i]
		c, _ := f.index.Fastest(from.ID, to.ID)
		line, ok := f.net.Line(c.LineID)
		if !ok {
			line = &network.Line{ID: c.LineID}
		}
		r.Legs = append(r.Legs, Leg{From: from, To: to, Line: line, Time: c.Time})
		r.TotalTime += c.Time
	}
	return r
}
