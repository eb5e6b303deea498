package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BersamaBelajar/gudang-pintar/internal/api"
	"github.com/BersamaBelajar/gudang-pintar/internal/cache"
	"github.com/BersamaBelajar/gudang-pintar/internal/database"
	"github.com/BersamaBelajar/gudang-pintar/internal/mailer"
	"github.com/BersamaBelajar/gudang-pintar/internal/messaging"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
	"github.com/BersamaBelajar/gudang-pintar/internal/search"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
	"github.com/BersamaBelajar/gudang-pintar/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	log.Info().Str("environment", cfg.Environment).Msg("Starting warehouse service")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	busClient, err := messaging.NewServiceBusClient(cfg.ServiceBus)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Service Bus client")
	}
	defer busClient.Close()

	esClient, err := search.NewElasticClient(cfg.Elasticsearch)
	if err != nil {
		log.Warn().Err(err).Msg("Search disabled: Elasticsearch client could not be created")
		esClient = nil
	}

	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.Warn().Err(err).Msg("New Relic disabled: agent could not be initialized")
	}

	m := metrics.New()

	svc, err := service.New(service.Config{
		Repository: repository.NewRepository(db),
		Cache:      redisClient,
		Mailer:     mailer.New(cfg.Mailer),
		Bus:        busClient,
		Search:     esClient,
		Metrics:    m,
		AppConfig:  cfg,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	server := api.NewServer(cfg, nrApp, svc, m)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
