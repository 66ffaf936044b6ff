/*
Package network holds the immutable description of a transit network:
stations, lines and the timed connections between pairs of stations.

A Network is assembled once through a Builder and never changes
afterwards, so it can be shared freely between goroutines.

# Basic Usage

	b := network.NewBuilder()
	_ = b.AddStation("1", "Alpha", 1)
	_ = b.AddStation("2", "Beta", 1, 2)
	_ = b.AddLine("L1", "First Line")
	_ = b.AddConnection("1", "2", "L1", 5)
	net := b.Build()

	st, ok := net.StationByName("Beta")

Load a tube map JSON file:

	net, err := network.LoadJSONFile("data/london.json")

# Zones

A station straddling two fare zones is described with a fractional
nominal zone ("2.5") and belongs to both neighbouring zones (2 and 3).
See ParseZone.

# Duplicate names

Station names are not guaranteed unique. StationByName returns the
station that was added first.
*/
package network
