package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/config"
	"github.com/BersamaBelajar/gudang-pintar/internal/api/middleware"
	"github.com/BersamaBelajar/gudang-pintar/internal/api/routes"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, nrApp *newrelic.Application, svc service.Service, m *metrics.Metrics) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(m))

	if nrApp != nil {
		router.Use(middleware.NewRelic(nrApp))
	}

	routes.SetupRoutes(router, svc, m)

	return &Server{
		router: router,
		config: cfg,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Int("port", s.config.Server.Port).Msg("Starting HTTP server")
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
