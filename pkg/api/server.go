package api

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxConcurrent  int
	CORSOrigin     string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:           addr,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   15 * time.Second,
		RequestTimeout: 10 * time.Second,
		MaxConcurrent:  runtime.NumCPU() * 4,
		CORSOrigin:     "",
	}
}

// NewServer creates an HTTP server with all routes and middleware.
func NewServer(cfg ServerConfig, handlers *Handlers, metrics *Metrics) *http.Server {
	mux := http.NewServeMux()

	// Concurrency limiter.
	sem := make(chan struct{}, cfg.MaxConcurrent)
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return withMiddleware(h, sem, cfg)
	}

	// Routes.
	mux.HandleFunc("GET /api/v1/buildings", wrap(handlers.HandleBuildings))
	mux.HandleFunc("GET /api/v1/selection", wrap(handlers.HandleSelection))
	mux.HandleFunc("GET /api/v1/selection/nearest", wrap(handlers.HandleNearest))
	mux.HandleFunc("POST /api/v1/selection/start", wrap(handlers.HandleSelectStart))
	mux.HandleFunc("POST /api/v1/selection/end", wrap(handlers.HandleSelectEnd))
	mux.HandleFunc("POST /api/v1/selection/go", wrap(handlers.HandleGo))
	mux.HandleFunc("POST /api/v1/selection/reverse", wrap(handlers.HandleReverse))
	mux.HandleFunc("POST /api/v1/selection/clear", wrap(handlers.HandleClear))
	mux.HandleFunc("GET /api/v1/route.geojson", wrap(handlers.HandleRouteGeoJSON))
	mux.HandleFunc("GET /api/v1/route.osm", wrap(handlers.HandleRouteOSM))
	mux.HandleFunc("GET /api/v1/route.png", wrap(handlers.HandleRoutePNG))
	mux.HandleFunc("GET /api/v1/health", wrap(handlers.HandleHealth))
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	page, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("static files: %v", err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(page)))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// ListenAndServe starts the server and blocks until shutdown signal. The
// sessions are closed on the way out.
func ListenAndServe(srv *http.Server, sessions *Sessions) error {
	// Graceful shutdown on SIGTERM/SIGINT.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(ctx)
		sessions.CloseAll()
		return err
	}
}

// withMiddleware wraps a handler with logging, recovery, security headers,
// and concurrency limiting.
func withMiddleware(handler http.HandlerFunc, sem chan struct{}, cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Security headers.
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		// CORS.
		if cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			// Browsers refuse credentials with a wildcard origin.
			if cfg.CORSOrigin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		// Concurrency limiter.
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
		default:
			w.Header().Set("Retry-After", "1")
			http.Error(w, `{"error":"service_unavailable"}`, http.StatusServiceUnavailable)
			return
		}

		// Recovery.
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v", rec)
				http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
			}
		}()

		// Request timeout.
		if cfg.RequestTimeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), cfg.RequestTimeout)
			defer cancel()
			r = r.WithContext(ctx)
		}

		start := time.Now()
		handler(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	}
}
