package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JhonRainbow6/WebProject/modules/account"
	"github.com/JhonRainbow6/WebProject/modules/gaming"
	"github.com/JhonRainbow6/WebProject/pkg/environment"
	"github.com/JhonRainbow6/WebProject/pkg/httpserver"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
	"github.com/JhonRainbow6/WebProject/pkg/requestid"
)

// routes is everything the top-level router needs.
type routes struct {
	log          *slog.Logger
	env          environment.Environment
	cors         httpserver.CORSConfig
	registry     *prometheus.Registry
	metrics      *metrics.Metrics
	checks       []httpserver.Check
	readyTimeout time.Duration
	account      account.RouterOptions
	gaming       gaming.RouterOptions
	// uploadsDir is served under uploadsURL when images are stored locally.
	uploadsDir string
	uploadsURL string
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		httpserver.Recover(rt.log),
		environment.Middleware(rt.env),
		httpserver.CORS(rt.cors),
		rt.metrics.Middleware,
	)

	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/ready", httpserver.ReadinessHandler(rt.log, rt.readyTimeout, rt.checks...))
	r.Handle("/metrics", metrics.Handler(rt.registry))

	if rt.uploadsDir != "" {
		prefix := "/" + strings.Trim(rt.uploadsURL, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, noListing(http.FileServer(http.Dir(rt.uploadsDir)))))
	}

	api := account.Router(rt.account)
	// /steam/auth belongs to the account router; the rest of /steam to gaming.
	api.Mount("/", gaming.Router(rt.gaming))
	r.Mount("/api", api)

	return r
}

// noListing hides directory indexes.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
