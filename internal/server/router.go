package server

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
)

// NewRouter builds the Stremio addon HTTP surface on top of a subtitle lookup.
// An empty defaultLanguage falls back to config.DefaultLanguage.
func NewRouter(lookup services.SubtitleLookup, defaultLanguage string) http.Handler {
	if defaultLanguage == "" {
		defaultLanguage = config.DefaultLanguage
	}
	h := &handlers{lookup: lookup, defaultLanguage: defaultLanguage}

	r := chi.NewRouter()
	// instrument wraps Recoverer so recovered panics are counted as 500s
	r.Use(instrument, middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	// Stremio clients run in browsers on other origins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(accessLog(config.GetLogger()))
	r.Use(sentryHub)

	r.Get("/health", h.health)
	r.Get("/manifest.json", h.manifest)
	r.Route("/subtitles/{type}", func(r chi.Router) {
		r.Get("/{id}", h.subtitles)
		r.Get("/{id}/{extra}", h.subtitles)
	})

	return r
}

// NewHTTPServer wraps handler in an http.Server listening on address:port.
// Port 0 picks an ephemeral port when the caller listens on Addr.
func NewHTTPServer(address string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(address, strconv.Itoa(port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
