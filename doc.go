// Package tubepathfinder serves minimum-time routes over a tube network.
//
// Service wraps a path.Finder behind a chi router:
//
//	GET  /api/health
//	GET  /api/stations?q=&format=json|xml
//	GET  /api/route?from=&to=&format=json|xml|text
//	POST /api/network/reload
//
// Rendered routes are memoized in a RouteCache keyed by the network
// snapshot id. Reload swaps in a freshly loaded network without blocking
// requests.
package tubepathfinder
