package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// required lists the GTFS tables a network is derived from, in the order
// they must be consumed.
var required = []string{"stops.txt", "routes.txt", "trips.txt", "stop_times.txt"}

// LoadNetworkFromFile builds a network from a GTFS zip on disk.
func LoadNetworkFromFile(path string, opts Options) (*network.Network, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS zip: %w", err)
	}
	defer zr.Close()
	return loadZip(&zr.Reader, opts)
}

// LoadNetworkFromBytes builds a network from raw GTFS zip bytes.
func LoadNetworkFromBytes(data []byte, opts Options) (*network.Network, error) {
	return LoadNetworkFromReader(bytes.NewReader(data), int64(len(data)), opts)
}

// LoadNetworkFromReader builds a network from any zip source.
func LoadNetworkFromReader(r io.ReaderAt, size int64, opts Options) (*network.Network, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS zip: %w", err)
	}
	return loadZip(zr, opts)
}

func loadZip(zr *zip.Reader, opts Options) (*network.Network, error) {
	files := map[string]*zip.File{}
	for _, f := range zr.File {
		// feeds are sometimes zipped with a top-level folder
		name := strings.ToLower(f.Name)
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		files[name] = f
	}

	fd := newFeed()
	for _, name := range required {
		f, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("GTFS feed is missing %s", name)
		}
		if err := fd.consumeCSV(name, f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	return fd.toNetwork(opts), nil
}

func (fd *feed) consumeCSV(name string, f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	switch name {
	case "stops.txt":
		sID := idx("stop_id")
		if sID < 0 {
			return fmt.Errorf("missing stop_id column")
		}
		sN, sZone, sParent, sType := idx("stop_name"), idx("zone_id"), idx("parent_station"), idx("location_type")
		for _, row := range rec[1:] {
			id := cell(row, sID)
			if id == "" {
				continue
			}
			if _, dup := fd.stops[id]; dup {
				continue
			}
			lt, _ := strconv.Atoi(cell(row, sType))
			fd.stops[id] = stop{
				id:           id,
				name:         cell(row, sN),
				zone:         cell(row, sZone),
				parent:       cell(row, sParent),
				locationType: lt,
			}
			fd.stopOrder = append(fd.stopOrder, id)
		}
	case "routes.txt":
		rID := idx("route_id")
		if rID < 0 {
			return fmt.Errorf("missing route_id column")
		}
		rAg, rSN, rLN := idx("agency_id"), idx("route_short_name"), idx("route_long_name")
		for _, row := range rec[1:] {
			id := cell(row, rID)
			if id == "" {
				continue
			}
			if _, dup := fd.routes[id]; dup {
				continue
			}
			fd.routes[id] = route{
				id:        id,
				agencyID:  cell(row, rAg),
				shortName: cell(row, rSN),
				longName:  cell(row, rLN),
			}
			fd.routeOrder = append(fd.routeOrder, id)
		}
	case "trips.txt":
		rID, tID := idx("route_id"), idx("trip_id")
		if rID < 0 || tID < 0 {
			return fmt.Errorf("missing route_id or trip_id column")
		}
		for _, row := range rec[1:] {
			trip := cell(row, tID)
			if trip == "" {
				continue
			}
			if _, dup := fd.tripToRoute[trip]; dup {
				continue
			}
			fd.tripToRoute[trip] = cell(row, rID)
			fd.tripOrder = append(fd.tripOrder, trip)
		}
	case "stop_times.txt":
		tID, sID, sq := idx("trip_id"), idx("stop_id"), idx("stop_sequence")
		if tID < 0 || sID < 0 || sq < 0 {
			return fmt.Errorf("missing trip_id, stop_id or stop_sequence column")
		}
		arrTime, depTime := idx("arrival_time"), idx("departure_time")
		for _, row := range rec[1:] {
			trip := cell(row, tID)
			if _, ok := fd.tripToRoute[trip]; !ok {
				continue
			}
			seq, err := strconv.Atoi(cell(row, sq))
			if err != nil {
				continue
			}
			fd.tripStops[trip] = append(fd.tripStops[trip], stopTime{
				stop:      cell(row, sID),
				seq:       seq,
				arrival:   parseClock(cell(row, arrTime)),
				departure: parseClock(cell(row, depTime)),
			})
		}
	}
	return nil
}

// parseClock converts a GTFS HH:MM:SS time to seconds after midnight.
// Hours may exceed 23 for trips running past midnight. Returns -1 when
// the value is empty or malformed.
func parseClock(s string) int {
	if s == "" {
		return -1
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return -1
	}
	return h*3600 + m*60 + sec
}
