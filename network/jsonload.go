package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// tubeMapDocument mirrors the tube map JSON layout. Ids, zones and times
// appear both as strings and as numbers in the wild, hence the loose types.
type tubeMapDocument struct {
	Stations    []map[string]any `json:"stations"`
	Lines       []map[string]any `json:"lines"`
	Connections []map[string]any `json:"connections"`
}

type stationRecord struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
	Zone string `validate:"required"`
}

type lineRecord struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
}

type connectionRecord struct {
	Station1 string `validate:"required"`
	Station2 string `validate:"required,nefield=Station1"`
	Line     string `validate:"required"`
	Time     int    `validate:"gt=0"`
}

// LoadJSONFile reads a tube map JSON file.
func LoadJSONFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tube map: %w", err)
	}
	return LoadJSON(bytes.NewReader(data))
}

// LoadJSON decodes a tube map document. Malformed station, line and
// connection records are skipped with a warning; an unreadable document
// is an error and yields no network. An empty object yields an empty
// network.
func LoadJSON(r io.Reader) (*Network, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc tubeMapDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode tube map: empty document")
		}
		return nil, fmt.Errorf("failed to decode tube map: %w", err)
	}
	return buildFromDocument(doc), nil
}

func buildFromDocument(doc tubeMapDocument) *Network {
	b := NewBuilder()
	for i, raw := range doc.Stations {
		rec := stationRecord{
			ID:   asString(raw["id"]),
			Name: asString(raw["name"]),
			Zone: asString(raw["zone"]),
		}
		if err := validate.Struct(rec); err != nil {
			log.Printf("Warning: skipping station #%d: %v", i, err)
			continue
		}
		zones, err := ParseZone(rec.Zone)
		if err != nil {
			log.Printf("Warning: skipping station %s: %v", rec.ID, err)
			continue
		}
		if err := b.AddStation(rec.ID, rec.Name, zones...); err != nil {
			log.Printf("Warning: skipping station #%d: %v", i, err)
		}
	}
	for i, raw := range doc.Lines {
		rec := lineRecord{
			ID:   asString(raw["id"]),
			Name: asString(raw["name"]),
		}
		if err := validate.Struct(rec); err != nil {
			log.Printf("Warning: skipping line #%d: %v", i, err)
			continue
		}
		if err := b.AddLine(rec.ID, rec.Name); err != nil {
			log.Printf("Warning: skipping line #%d: %v", i, err)
		}
	}
	for i, raw := range doc.Connections {
		minutes, err := asInt(raw["time"])
		if err != nil {
			log.Printf("Warning: skipping connection #%d: bad time: %v", i, err)
			continue
		}
		rec := connectionRecord{
			Station1: asString(raw["station1"]),
			Station2: asString(raw["station2"]),
			Line:     asString(raw["line"]),
			Time:     minutes,
		}
		if err := validate.Struct(rec); err != nil {
			log.Printf("Warning: skipping connection #%d: %v", i, err)
			continue
		}
		if err := b.AddConnection(rec.Station1, rec.Station2, rec.Line, rec.Time); err != nil {
			log.Printf("Warning: skipping connection #%d: %v", i, err)
		}
	}
	return b.Build()
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

func asInt(v any) (int, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("not an integer: %s", t)
		}
		return int(f), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	case float64:
		if t != float64(int(t)) {
			return 0, fmt.Errorf("not an integer: %v", t)
		}
		return int(t), nil
	case int:
		return t, nil
	case nil:
		return 0, errors.New("missing")
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}
