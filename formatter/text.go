package formatter

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/tube-pathfinder/path"
)

// Text renders a route for a terminal. The first line is the station
// names joined by " -> ", followed by one line per leg and the total.
func Text(r path.Route, from, to string) string {
	switch r.Outcome {
	case path.OutcomeUnknownStation:
		return fmt.Sprintf("Unknown station: %q or %q is not on the network\n", from, to)
	case path.OutcomeNoRoute:
		return fmt.Sprintf("No route from %s to %s\n", from, to)
	case path.OutcomeSameStation:
		return fmt.Sprintf("%s\nAlready there: 0 min\n", r.Stations)
	}

	var b strings.Builder
	b.WriteString(r.Stations.String())
	b.WriteString("\n")
	for _, l := range r.Legs {
		name := l.Line.Name
		if name == "" {
			name = l.Line.ID
		}
		fmt.Fprintf(&b, "  %s -> %s (%s, %d min)\n", l.From.Name, l.To.Name, name, l.Time)
	}
	fmt.Fprintf(&b, "Total: %d min\n", r.TotalTime)
	return b.String()
}
