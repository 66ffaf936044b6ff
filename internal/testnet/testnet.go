// Package testnet provides fixture networks shared by package tests.
package testnet

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
)

// GetTestDataPath returns absolute path to testdata/
func GetTestDataPath() string {
	wd, _ := os.Getwd()
	for {
		testdataPath := filepath.Join(wd, "testdata")
		if _, err := os.Stat(testdataPath); err == nil {
			return testdataPath
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			panic("Could not find testdata directory")
		}
		wd = parent
	}
}

// LondonPath is the path of the London fixture.
func LondonPath() string {
	return filepath.Join(GetTestDataPath(), "london.json")
}

// London loads testdata/london.json.
func London(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.LoadJSONFile(LondonPath())
	if err != nil {
		t.Fatalf("Failed to load London fixture: %v", err)
	}
	return net
}

// ABC is A(1) -5- B(2) -4- C(3) on line L1.
func ABC(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder()
	must(t, b.AddStation("1", "A", 1))
	must(t, b.AddStation("2", "B", 1))
	must(t, b.AddStation("3", "C", 2))
	must(t, b.AddLine("L1", "Line 1"))
	must(t, b.AddConnection("1", "2", "L1", 5))
	must(t, b.AddConnection("2", "3", "L1", 4))
	return b.Build()
}

// Parallel joins P and Q twice: on L1 in 2 minutes, then on L2 in 1
// minute. Q -1- R on L1 and a direct P -3- R on L3.
func Parallel(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder()
	must(t, b.AddStation("p", "P", 1))
	must(t, b.AddStation("q", "Q", 1))
	must(t, b.AddStation("r", "R", 1))
	must(t, b.AddLine("L1", "Slow Line"))
	must(t, b.AddLine("L2", "Fast Line"))
	must(t, b.AddLine("L3", "Direct Line"))
	must(t, b.AddConnection("p", "q", "L1", 2))
	must(t, b.AddConnection("q", "p", "L2", 1))
	must(t, b.AddConnection("q", "r", "L1", 1))
	must(t, b.AddConnection("p", "r", "L3", 3))
	return b.Build()
}

// Disconnected holds two isolated pairs, W-X and Y-Z, plus a station
// without any connection.
func Disconnected(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder()
	must(t, b.AddStation("w", "W", 1))
	must(t, b.AddStation("x", "X", 1))
	must(t, b.AddStation("y", "Y", 2))
	must(t, b.AddStation("z", "Z", 2))
	must(t, b.AddStation("lonely", "Lonely", 3))
	must(t, b.AddLine("L1", "Line 1"))
	must(t, b.AddLine("L2", "Line 2"))
	must(t, b.AddConnection("w", "x", "L1", 3))
	must(t, b.AddConnection("y", "z", "L2", 2))
	return b.Build()
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
}

// MiniGTFS holds a small Victoria and Northern line feed plus one bus
// route of another agency. Stop KXX_P is a platform of KXX, ENT is an
// entrance and FOO has a non-numeric zone.
var MiniGTFS = map[string]string{
	"stops.txt": `stop_id,stop_name,zone_id,parent_station,location_type
HIG,Highbury & Islington,2.5,,1
KXX,King's Cross St. Pancras,1,,1
KXX_P,King's Cross Victoria Platform,1,KXX,0
ENT,King's Cross Entrance,1,KXX,2
EUS,Euston,1,,1
WAR,Warren Street,1,,1
FOO,Mornington Crescent,Z,,0
`,
	"routes.txt": `route_id,agency_id,route_short_name,route_long_name,route_type
VIC,TFL,Victoria,Victoria line,1
NTN,TFL,,Northern line,1
BUS73,OTHER,73,,3
`,
	"trips.txt": `route_id,service_id,trip_id
VIC,wk,V1
VIC,wk,V2
NTN,wk,N1
BUS73,wk,B1
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
V1,08:00:00,08:00:30,HIG,1
V1,08:03:00,08:03:30,KXX_P,2
V1,08:05:00,08:05:20,EUS,3
V1,08:06:00,08:06:00,WAR,4
V2,09:05:00,09:05:20,EUS,3
V2,09:00:00,09:00:30,HIG,1
V2,09:03:00,09:03:30,KXX_P,2
N1,25:00:00,25:00:00,KXX,1
N1,25:02:00,25:02:00,EUS,2
N1,25:02:00,25:02:00,FOO,3
B1,08:00:00,08:00:00,HIG,1
B1,08:20:00,08:20:00,WAR,2
`,
}

// GTFSZip zips the given files in memory.
func GTFSZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("fixture: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("fixture: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return buf.Bytes()
}
