package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(deps Dependencies, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	if deps.AllowedOrigins == nil {
		deps.AllowedOrigins = splitOrigins(config.GetString(c, "ACCEPTED_ORIGINS", ""))
	}
	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// HealthResponse reports liveness and uptime
type HealthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var rt router
	for _, opt := range opts {
		opt(&rt)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(deps)
	adminMiddleware := newAdminMiddleware(deps.Gate)

	chiRouter.Use(CORSCheckMiddleware(deps.AllowedOrigins))
	chiRouter.Use(corsMiddleware(deps.AllowedOrigins))

	responder := NewResponder(log.Logger)
	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: rt.startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(rt.startupTime).Round(time.Second).String(),
		})
	})

	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, adminMiddleware)

	return chiRouter
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
