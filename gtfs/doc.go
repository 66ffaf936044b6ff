/*
Package gtfs derives a tube network from a GTFS static feed.

This package is data-source agnostic. It accepts a zip path, raw zip bytes
or an io.ReaderAt and returns a *network.Network. Fetching over HTTP is
handled by the source package.

# Basic Usage

	net, err := gtfs.LoadNetworkFromFile("gtfs.zip", gtfs.Options{AgencyID: "TFL"})
	if err != nil {
	    log.Fatal(err)
	}

# Mapping

  - stops.txt: every stop without a parent station becomes a station.
    Platforms are folded into their parent. zone_id is parsed like a
    network zone ("2.5" spans zones 2 and 3); anything else falls back to
    Options.DefaultZone.
  - routes.txt: every route becomes a line named by route_short_name,
    then route_long_name, then route_id.
  - stop_times.txt: each pair of consecutive stops on a trip becomes a
    connection. Its time is the departure to next arrival gap rounded up
    to whole minutes, never below Options.MinConnectionMinutes.
    Repeated trips produce the same connection once.

# Performance

Parse the feed once and keep the network, or persist it with the store
package. Parsing a large feed takes seconds, a snapshot loads in milliseconds.
*/
package gtfs
