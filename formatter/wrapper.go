package formatter

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
	"github.com/theoremus-urban-solutions/tube-pathfinder/path"
)

// StationView is a station as exposed to clients.
type StationView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []int  `json:"zones"`
}

// LegView is one hop of a route.
type LegView struct {
	From     string `json:"from"`
	To       string `json:"to"`
	LineID   string `json:"lineId"`
	LineName string `json:"lineName"`
	Minutes  int    `json:"minutes"`
}

// RouteResponse answers a route query.
type RouteResponse struct {
	ResponseTimestamp string        `json:"responseTimestamp"`
	NetworkID         string        `json:"networkId"`
	From              string        `json:"from"`
	To                string        `json:"to"`
	Outcome           string        `json:"outcome"`
	Found             bool          `json:"found"`
	TotalMinutes      int           `json:"totalMinutes"`
	Stations          []StationView `json:"stations"`
	Legs              []LegView     `json:"legs"`
}

// StationsResponse lists stations.
type StationsResponse struct {
	ResponseTimestamp string        `json:"responseTimestamp"`
	NetworkID         string        `json:"networkId"`
	Count             int           `json:"count"`
	Stations          []StationView `json:"stations"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ResponseTimestamp string `json:"responseTimestamp"`
	Status            int    `json:"status"`
	Error             string `json:"error"`
}

// NewStationView copies a station.
func NewStationView(s *network.Station) StationView {
	zones := make([]int, len(s.Zones))
	copy(zones, s.Zones)
	return StationView{ID: s.ID, Name: s.Name, Zones: zones}
}

// WrapRoute builds the response for a route between the names from and to.
func WrapRoute(r path.Route, from, to string, net *network.Network, now time.Time) *RouteResponse {
	res := &RouteResponse{
		ResponseTimestamp: iso8601(now),
		NetworkID:         networkID(net),
		From:              from,
		To:                to,
		Outcome:           r.Outcome.String(),
		Found:             r.Found(),
		TotalMinutes:      r.TotalTime,
		Stations:          []StationView{},
		Legs:              []LegView{},
	}
	for _, s := range r.Stations {
		res.Stations = append(res.Stations, NewStationView(s))
	}
	for _, l := range r.Legs {
		res.Legs = append(res.Legs, LegView{
			From:     l.From.Name,
			To:       l.To.Name,
			LineID:   l.Line.ID,
			LineName: l.Line.Name,
			Minutes:  l.Time,
		})
	}
	return res
}

// WrapStations lists the stations of net whose name contains query,
// ignoring case. An empty query lists every station in load order.
func WrapStations(net *network.Network, query string, now time.Time) *StationsResponse {
	res := &StationsResponse{
		ResponseTimestamp: iso8601(now),
		NetworkID:         networkID(net),
		Stations:          []StationView{},
	}
	query = strings.ToLower(strings.TrimSpace(query))
	for _, s := range net.Stations() {
		if query != "" && !strings.Contains(strings.ToLower(s.Name), query) {
			continue
		}
		res.Stations = append(res.Stations, NewStationView(s))
	}
	res.Count = len(res.Stations)
	return res
}

// WrapError builds an error body.
func WrapError(status int, msg string, now time.Time) *ErrorResponse {
	return &ErrorResponse{ResponseTimestamp: iso8601(now), Status: status, Error: msg}
}

func iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func networkID(net *network.Network) string {
	if net == nil {
		return ""
	}
	return net.SnapshotID.String()
}
