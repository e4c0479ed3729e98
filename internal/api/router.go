package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "T9-Keypad/docs"
	middlewarex "T9-Keypad/internal/api/middleware"
	"T9-Keypad/internal/config"
	"T9-Keypad/internal/domain/ratelimit"
	metricsinfra "T9-Keypad/internal/infra/metrics"
	"T9-Keypad/pkg/api/response"
)

type readiness interface {
	Ready() bool
}

// WordIndex is what the router needs from the word service.
type WordIndex interface {
	wordMatcher
	readiness
}

type Router struct {
	*chi.Mux
	Server *http.Server
	logger *slog.Logger
	cfg    *config.Config
}

func New(cfg *config.Config, logger *slog.Logger, words WordIndex, gate ratelimit.Gate, metrics *metricsinfra.Metrics) *Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middlewarex.ClientIdentity(cfg.RateLimit.TrustForwardedFor))
	r.Use(middlewarex.Logger(logger))
	r.Use(middlewarex.Metrics(metrics))
	r.Use(middlewarex.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	wordsHandler := NewWordsHandler(words)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !words.Ready() {
			response.Error(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(middlewarex.RateLimit(gate, logger, metrics)).Get("/words/match", wordsHandler.Match)
	})

	if cfg.Swagger.Enabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.NotFound(spaHandler(cfg.Static.Dir))

	router := &Router{
		Mux:    r,
		logger: logger,
		cfg:    cfg,
	}

	router.Server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return router
}
