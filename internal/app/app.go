package app

import (
	"context"
	"errors"
	"log/slog"

	httpserverapp "github.com/HaruSatoru/shareit/internal/app/httpserver"
	prometheusapp "github.com/HaruSatoru/shareit/internal/app/prometheus"
	storageapp "github.com/HaruSatoru/shareit/internal/app/storage"
	redisapp "github.com/HaruSatoru/shareit/internal/app/storage/redis"
	"github.com/HaruSatoru/shareit/internal/config"
	"github.com/HaruSatoru/shareit/internal/kafka"
	bookingservice "github.com/HaruSatoru/shareit/internal/services/booking"
	eventsender "github.com/HaruSatoru/shareit/internal/services/event_sender"
	itemservice "github.com/HaruSatoru/shareit/internal/services/item"
	userservice "github.com/HaruSatoru/shareit/internal/services/user"
)

type App struct {
	httpServer   *httpserverapp.App
	metrics      *prometheusapp.App
	storage      *storageapp.App
	redisStorage *redisapp.App
	eventSender  *eventsender.Sender
	kafka        *kafka.Producer
	cfg          *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	metrics := prometheusapp.New(log, cfg.Metrics.Port)
	kafkaPublisher := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)

	storage := storageapp.MustCreateApp(cfg.Storage, log)
	redisApp := redisapp.New(log, cfg.Redis.Address, cfg.Redis.ItemTTL)

	eventSender := eventsender.NewSender(log, kafkaPublisher, storage.Storage)

	clock := bookingservice.NewSystemClock()

	bookingSvc := bookingservice.New(
		log,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		redisApp.Storage,
		clock,
		bookingservice.Metrics{
			Created:   metrics.BookingsCreated,
			Conflicts: metrics.BookingConflicts,
			Decisions: metrics.BookingDecisions,
		},
	)

	itemSvc := itemservice.New(
		log,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		redisApp.Storage,
		clock,
	)

	userSvc := userservice.New(log, storage.Storage, storage.Storage)

	httpServer := httpserverapp.New(log, cfg.HTTP, bookingSvc, itemSvc, userSvc, metrics.RequestsCounter)

	return &App{
		httpServer:   httpServer,
		metrics:      metrics,
		storage:      storage,
		redisStorage: redisApp,
		eventSender:  eventSender,
		kafka:        kafkaPublisher,
		cfg:          cfg,
	}
}

func (a *App) MustRun() {
	go a.httpServer.MustRun()
	go a.metrics.MustRun()
	a.eventSender.StartProducing(context.Background(), a.cfg.Outbox.BatchSize, a.cfg.Outbox.Interval)
}

func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if err := a.httpServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := a.metrics.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	a.eventSender.StopSending()

	if err := a.kafka.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := a.storage.Stop(); err != nil {
		errs = append(errs, err)
	}

	if err := a.redisStorage.Stop(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
