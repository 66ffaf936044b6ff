package tubepathfinder

import (
	"errors"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/tube-pathfinder/formatter"
)

func (s *Service) handleRoute(w http.ResponseWriter, r *http.Request) {
	q, err := parseRouteQuery(r.URL.Query())
	if err != nil {
		writeError(w, q.Format, http.StatusBadRequest, err.Error())
		return
	}
	buf, status := s.cache.Route(s.Finder(), q)
	w.Header().Set("Content-Type", contentType(q.Format))
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

func (s *Service) handleStations(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r.URL.Query())
	format, err := normalizeFormat(params["format"])
	if err != nil || format == FormatText {
		writeError(w, FormatJSON, http.StatusBadRequest, "Unsupported format: "+params["format"])
		return
	}
	res := formatter.WrapStations(s.Finder().Network(), params["q"], time.Now())
	rb := formatter.NewResponseBuilder()
	w.Header().Set("Content-Type", contentType(format))
	if format == FormatXML {
		_, _ = w.Write(rb.BuildStationsXML(res))
		return
	}
	_, _ = w.Write(rb.BuildJSON(res))
}

func (s *Service) handleReload(w http.ResponseWriter, r *http.Request) {
	err := s.Reload(r.Context())
	switch {
	case errors.Is(err, ErrReloadDisabled):
		writeError(w, FormatJSON, http.StatusNotImplemented, err.Error())
		return
	case err != nil:
		writeError(w, FormatJSON, http.StatusBadGateway, err.Error())
		return
	}
	s.handleHealth(w, r)
}
