package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BersamaBelajar/gudang-pintar/internal/cache"
	"github.com/BersamaBelajar/gudang-pintar/internal/database"
	"github.com/BersamaBelajar/gudang-pintar/internal/mailer"
	"github.com/BersamaBelajar/gudang-pintar/internal/messaging"
	"github.com/BersamaBelajar/gudang-pintar/internal/metrics"
	"github.com/BersamaBelajar/gudang-pintar/internal/repository"
	"github.com/BersamaBelajar/gudang-pintar/internal/service"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the approval reminder worker",
	Run:   runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) {
	log.Info().
		Dur("interval", cfg.Approval.ReminderInterval).
		Dur("reminder_after", cfg.Approval.ReminderAfter).
		Msg("Starting reminder worker")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
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

	svc, err := service.New(service.Config{
		Repository: repository.NewRepository(db),
		Cache:      redisClient,
		Mailer:     mailer.New(cfg.Mailer),
		Bus:        busClient,
		Metrics:    metrics.New(),
		AppConfig:  cfg,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Approval.ReminderInterval),
		gocron.NewTask(func() {
			sent, err := svc.SendPendingReminders(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Reminder run failed")
				return
			}
			log.Debug().Int("sent", sent).Msg("Reminder run finished")
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule reminder job")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Start()
		<-ctx.Done()
		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
		os.Exit(1)
	}

	log.Info().Msg("Worker exited properly")
}
