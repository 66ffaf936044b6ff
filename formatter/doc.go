// Package formatter provides response wrapping and serialization for route queries.
//
// This package is organized into:
// - wrapper.go: response views built from path.Route and network data
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
// - text.go: plain text for the command line
//
// XML is written by hand for precise control over element order and escaping.
package formatter
