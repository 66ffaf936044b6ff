package tubepathfinder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/theoremus-urban-solutions/tube-pathfinder/config"
	"github.com/theoremus-urban-solutions/tube-pathfinder/network"
	"github.com/theoremus-urban-solutions/tube-pathfinder/path"
)

// Loader produces a fresh network, e.g. source.Load bound to a config.
type Loader func(ctx context.Context) (*network.Network, error)

// ErrReloadDisabled is returned by Reload when the service has no Loader.
var ErrReloadDisabled = errors.New("network reload is not configured")

type loadedFinder struct {
	finder   *path.Finder
	loadedAt time.Time
}

// Service serves route queries over HTTP. The current network is swapped
// atomically on reload, so in-flight requests finish on the finder they
// started with.
type Service struct {
	current  atomic.Pointer[loadedFinder]
	cache    *RouteCache
	loader   Loader
	reloadMu sync.Mutex
	server   *http.Server
}

// NewService serves net. loader may be nil to disable reloads.
func NewService(net *network.Network, loader Loader, cacheTTL time.Duration) *Service {
	s := &Service{cache: NewRouteCache(cacheTTL), loader: loader}
	s.swap(net)
	return s
}

func (s *Service) swap(net *network.Network) *path.Finder {
	f := path.NewFinder(net)
	s.current.Store(&loadedFinder{finder: f, loadedAt: time.Now()})
	return f
}

// Finder returns the finder serving requests right now.
func (s *Service) Finder() *path.Finder {
	return s.current.Load().finder
}

// Reload fetches a new network and swaps it in. On failure the previous
// network keeps serving.
func (s *Service) Reload(ctx context.Context) error {
	if s.loader == nil {
		return ErrReloadDisabled
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	net, err := s.loader(ctx)
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	f := s.swap(net)
	s.cache.Flush()
	log.Printf("network reloaded: %s", f.Network().SnapshotID)
	return nil
}

// Router returns the HTTP handler. An empty allowedOrigins allows any origin.
func (s *Service) Router(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/stations", s.handleStations)
	r.Get("/api/route", s.handleRoute)
	r.Post("/api/network/reload", s.handleReload)
	return r
}

// StartServer listens on cfg.Port in the background.
func (s *Service) StartServer(cfg config.ServerConfig) {
	addr := fmt.Sprintf(":%d", cfg.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/stations?q=")
	log.Println("  GET  /api/route?from=&to=&format=json|xml|text")
	log.Println("  POST /api/network/reload")
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then drains the server.
func (s *Service) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
