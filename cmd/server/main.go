package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"campus_paths/pkg/api"
	"campus_paths/pkg/geo"
	"campus_paths/pkg/pathservice"
)

func main() {
	// A missing .env is fine; the flags and real environment still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	port := flag.Int("port", 8080, "HTTP port")
	serviceURL := flag.String("service-url", envOr("CAMPUS_SERVICE_URL", "http://localhost:4567"), "Campus route service base URL")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	requestTimeout := flag.Duration("request-timeout", 10*time.Second, "Per-request timeout")
	serviceTimeout := flag.Duration("service-timeout", 10*time.Second, "Route service call timeout")
	maxSessions := flag.Int("max-sessions", 10_000, "Maximum live selection sessions")
	sessionTTL := flag.Duration("session-ttl", 30*time.Minute, "Idle session expiration")
	flag.Parse()

	svcCfg := pathservice.DefaultConfig(*serviceURL)
	svcCfg.Timeout = *serviceTimeout
	client, err := pathservice.NewClient(svcCfg)
	if err != nil {
		log.Fatalf("Invalid route service config: %v", err)
	}
	log.Printf("Route service at %s", client.BaseURL())

	metrics := api.NewMetrics()

	sessCfg := api.DefaultSessionConfig()
	sessCfg.MaxSessions = *maxSessions
	sessCfg.IdleTTL = *sessionTTL
	sessions := api.NewSessions(metrics.Instrument(client), geo.UW, sessCfg, metrics)

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin
	cfg.RequestTimeout = *requestTimeout

	handlers := api.NewHandlers(sessions, metrics)
	srv := api.NewServer(cfg, handlers, metrics)

	if err := api.ListenAndServe(srv, sessions); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
