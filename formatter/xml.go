package formatter

import (
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// BuildRouteXML serializes a route response to XML
func (rb *responseBuilder) BuildRouteXML(res *RouteResponse) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<RouteResponse>")
	writeElement(&b, "ResponseTimestamp", res.ResponseTimestamp)
	writeElement(&b, "NetworkId", res.NetworkID)
	writeElement(&b, "From", res.From)
	writeElement(&b, "To", res.To)
	writeElement(&b, "Outcome", res.Outcome)
	writeElement(&b, "Found", strconv.FormatBool(res.Found))
	writeElement(&b, "TotalMinutes", strconv.Itoa(res.TotalMinutes))
	b.WriteString("<Stations>")
	for _, s := range res.Stations {
		writeStationXML(&b, s)
	}
	b.WriteString("</Stations>")
	b.WriteString("<Legs>")
	for _, l := range res.Legs {
		b.WriteString("<Leg>")
		writeElement(&b, "From", l.From)
		writeElement(&b, "To", l.To)
		b.WriteString(`<Line id="`)
		b.WriteString(xmlEscape(l.LineID))
		b.WriteString(`">`)
		b.WriteString(xmlEscape(l.LineName))
		b.WriteString("</Line>")
		writeElement(&b, "Minutes", strconv.Itoa(l.Minutes))
		b.WriteString("</Leg>")
	}
	b.WriteString("</Legs>")
	b.WriteString("</RouteResponse>")
	return []byte(b.String())
}

// BuildStationsXML serializes a station list to XML
func (rb *responseBuilder) BuildStationsXML(res *StationsResponse) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<StationsResponse>")
	writeElement(&b, "ResponseTimestamp", res.ResponseTimestamp)
	writeElement(&b, "NetworkId", res.NetworkID)
	writeElement(&b, "Count", strconv.Itoa(res.Count))
	b.WriteString("<Stations>")
	for _, s := range res.Stations {
		writeStationXML(&b, s)
	}
	b.WriteString("</Stations>")
	b.WriteString("</StationsResponse>")
	return []byte(b.String())
}

// BuildErrorXML serializes an error body to XML
func (rb *responseBuilder) BuildErrorXML(res *ErrorResponse) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<ErrorResponse>")
	writeElement(&b, "ResponseTimestamp", res.ResponseTimestamp)
	writeElement(&b, "Status", strconv.Itoa(res.Status))
	writeElement(&b, "Error", res.Error)
	b.WriteString("</ErrorResponse>")
	return []byte(b.String())
}

func writeStationXML(b *strings.Builder, s StationView) {
	b.WriteString(`<Station id="`)
	b.WriteString(xmlEscape(s.ID))
	b.WriteString(`">`)
	writeElement(b, "Name", s.Name)
	for _, z := range s.Zones {
		writeElement(b, "Zone", strconv.Itoa(z))
	}
	b.WriteString("</Station>")
}

// writeElement skips empty values
func writeElement(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// xmlEscape escapes markup and drops runes that XML 1.0 does not allow,
// such as control characters found in some GTFS feeds.
func xmlEscape(s string) string {
	if strings.IndexFunc(s, invalidXMLRune) >= 0 {
		s = strings.Map(func(r rune) rune {
			if invalidXMLRune(r) {
				return -1
			}
			return r
		}, s)
	}
	return xmlReplacer.Replace(s)
}

func invalidXMLRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return true
	}
	return r > 0x10FFFF
}
