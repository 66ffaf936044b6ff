package gtfs

import (
	"fmt"
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// Options controls how a GTFS feed becomes a network.
type Options struct {
	// AgencyID keeps only routes of this agency. Empty keeps all routes.
	AgencyID string
	// MinConnectionMinutes is the floor for a connection time. Defaults to 1.
	MinConnectionMinutes int
	// DefaultZone is used for stops whose zone_id is not numeric. Defaults to 1.
	DefaultZone int
}

func (o Options) withDefaults() Options {
	if o.MinConnectionMinutes <= 0 {
		o.MinConnectionMinutes = 1
	}
	if o.DefaultZone <= 0 {
		o.DefaultZone = 1
	}
	return o
}

type stop struct {
	id           string
	name         string
	zone         string
	parent       string
	locationType int
}

type route struct {
	id        string
	agencyID  string
	shortName string
	longName  string
}

type stopTime struct {
	stop      string
	seq       int
	arrival   int // seconds after midnight, -1 if missing
	departure int // seconds after midnight, -1 if missing
}

// feed holds the GTFS tables needed to derive stations, lines and
// connections, keeping file order for deterministic output.
type feed struct {
	stops       map[string]stop
	stopOrder   []string
	routes      map[string]route
	routeOrder  []string
	tripToRoute map[string]string
	tripOrder   []string
	tripStops   map[string][]stopTime
}

func newFeed() *feed {
	return &feed{
		stops:       map[string]stop{},
		routes:      map[string]route{},
		tripToRoute: map[string]string{},
		tripStops:   map[string][]stopTime{},
	}
}

// stationFor collapses platforms into their parent station.
func (f *feed) stationFor(stopID string) string {
	s, ok := f.stops[stopID]
	if !ok {
		return ""
	}
	if s.parent != "" {
		if _, ok := f.stops[s.parent]; ok {
			return s.parent
		}
	}
	return stopID
}

func (f *feed) keepRoute(r route, agencyID string) bool {
	return agencyID == "" || r.agencyID == "" || r.agencyID == agencyID
}

func (r route) name() string {
	switch {
	case r.shortName != "":
		return r.shortName
	case r.longName != "":
		return r.longName
	}
	return r.id
}

// toNetwork derives the network. Consecutive stops of every trip become
// a connection timed from departure to the next arrival; identical
// connections from repeated trips are kept once.
func (f *feed) toNetwork(opts Options) *network.Network {
	opts = opts.withDefaults()
	b := network.NewBuilder()

	for _, id := range f.stopOrder {
		s := f.stops[id]
		if f.stationFor(id) != id || s.locationType > 1 {
			continue
		}
		zones, err := network.ParseZone(s.zone)
		if err != nil {
			zones = []int{opts.DefaultZone}
		}
		name := s.name
		if name == "" {
			name = id
		}
		if err := b.AddStation(id, name, zones...); err != nil {
			log.Printf("Warning: skipping stop %s: %v", id, err)
		}
	}

	kept := map[string]bool{}
	for _, id := range f.routeOrder {
		r := f.routes[id]
		if !f.keepRoute(r, opts.AgencyID) {
			continue
		}
		if err := b.AddLine(id, r.name()); err != nil {
			log.Printf("Warning: skipping route %s: %v", id, err)
			continue
		}
		kept[id] = true
	}

	seen := map[string]bool{}
	skipped := 0
	for _, trip := range f.tripOrder {
		routeID := f.tripToRoute[trip]
		if !kept[routeID] {
			continue
		}
		times := f.tripStops[trip]
		sort.SliceStable(times, func(i, j int) bool { return times[i].seq < times[j].seq })
		for i := 1; i < len(times); i++ {
			from, to := f.stationFor(times[i-1].stop), f.stationFor(times[i].stop)
			if from == "" || to == "" || from == to {
				continue
			}
			minutes, ok := hopMinutes(times[i-1], times[i], opts.MinConnectionMinutes)
			if !ok {
				skipped++
				continue
			}
			key := connectionKey(from, to, routeID, minutes)
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := b.AddConnection(from, to, routeID, minutes); err != nil {
				log.Printf("Warning: skipping hop of trip %s: %v", trip, err)
			}
		}
	}
	if skipped > 0 {
		log.Printf("Warning: %d hops without usable times were skipped", skipped)
	}
	return b.Build()
}

func hopMinutes(from, to stopTime, floor int) (int, bool) {
	dep := from.departure
	if dep < 0 {
		dep = from.arrival
	}
	arr := to.arrival
	if arr < 0 {
		arr = to.departure
	}
	if dep < 0 || arr < 0 || arr < dep {
		return 0, false
	}
	minutes := (arr - dep + 59) / 60
	if minutes < floor {
		minutes = floor
	}
	return minutes, true
}

func connectionKey(a, b, routeID string, minutes int) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s|%s|%s|%d", a, b, routeID, minutes)
}
