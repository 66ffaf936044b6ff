package tubepathfinder

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/theoremus-urban-solutions/tube-pathfinder/formatter"
	"github.com/theoremus-urban-solutions/tube-pathfinder/path"
)

type cachedResponse struct {
	body   []byte
	status int
}

// RouteCache memoizes rendered route responses. Keys include the network
// snapshot id, so a reloaded network never serves stale routes.
type RouteCache struct {
	responses *cache.Cache
}

// NewRouteCache creates a cache whose entries live for ttl. A zero or negative ttl
// disables caching.
func NewRouteCache(ttl time.Duration) *RouteCache {
	if ttl <= 0 {
		return &RouteCache{}
	}
	return &RouteCache{responses: cache.New(ttl, 2*ttl)}
}

// memoKey quotes every part so separators inside station names cannot
// make two queries share a key.
func (rc *RouteCache) memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Quote(a))
	}
	return b.String()
}

// Route returns the rendered response for q and its HTTP status.
func (rc *RouteCache) Route(f *path.Finder, q routeQuery) ([]byte, int) {
	key := rc.memoKey(f.Network().SnapshotID.String(), q.From, q.To, q.Format)
	if rc.responses != nil {
		if v, ok := rc.responses.Get(key); ok {
			res := v.(cachedResponse)
			return res.body, res.status
		}
	}
	res := rc.build(f, q)
	if rc.responses != nil {
		rc.responses.SetDefault(key, res)
	}
	return res.body, res.status
}

// Flush drops every entry
func (rc *RouteCache) Flush() {
	if rc.responses != nil {
		rc.responses.Flush()
	}
}

// ItemCount reports the number of cached responses, expired ones included.
func (rc *RouteCache) ItemCount() int {
	if rc.responses == nil {
		return 0
	}
	return rc.responses.ItemCount()
}

func (rc *RouteCache) build(f *path.Finder, q routeQuery) cachedResponse {
	route := f.Route(q.From, q.To)
	status := http.StatusOK
	if route.Outcome == path.OutcomeUnknownStation {
		status = http.StatusNotFound
	}

	rb := formatter.NewResponseBuilder()
	var body []byte
	switch q.Format {
	case FormatXML:
		body = rb.BuildRouteXML(formatter.WrapRoute(route, q.From, q.To, f.Network(), time.Now()))
	case FormatText:
		body = []byte(formatter.Text(route, q.From, q.To))
	default:
		body = rb.BuildJSON(formatter.WrapRoute(route, q.From, q.To, f.Network(), time.Now()))
	}
	return cachedResponse{body: body, status: status}
}
