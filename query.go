package tubepathfinder

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/tube-pathfinder/formatter"
)

// Response formats
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatText = "text"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type routeQuery struct {
	From   string
	To     string
	Format string
}

func normalizeFormat(s string) (string, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	case FormatText, "txt":
		return FormatText, nil
	}
	return "", &QueryError{Msg: "Unsupported format: " + s}
}

// queryParams lower-cases parameter names and keeps the first value of each.
func queryParams(values url.Values) map[string]string {
	m := map[string]string{}
	for k, v := range values {
		if len(v) > 0 {
			m[strings.ToLower(k)] = strings.TrimSpace(v[0])
		}
	}
	return m
}

func parseRouteQuery(values url.Values) (routeQuery, error) {
	m := queryParams(values)
	format, err := normalizeFormat(m["format"])
	if err != nil {
		return routeQuery{Format: FormatJSON}, err
	}
	q := routeQuery{From: m["from"], To: m["to"], Format: format}
	if q.From == "" || q.To == "" {
		return q, &QueryError{Msg: "You must provide both from and to station names."}
	}
	return q, nil
}

func contentType(format string) string {
	switch format {
	case FormatXML:
		return "application/xml"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

func buildErrorPayload(format string, status int, msg string) []byte {
	res := formatter.WrapError(status, msg, time.Now())
	switch format {
	case FormatXML:
		return formatter.NewResponseBuilder().BuildErrorXML(res)
	case FormatText:
		return []byte(msg + "\n")
	}
	return formatter.NewResponseBuilder().BuildJSON(res)
}

func writeError(w http.ResponseWriter, format string, status int, msg string) {
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(format, status, msg))
}
