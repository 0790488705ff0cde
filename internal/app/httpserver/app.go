package httpserverapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/HaruSatoru/shareit/internal/config"
	"github.com/HaruSatoru/shareit/internal/http/api"
	"github.com/HaruSatoru/shareit/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	log    *slog.Logger
	port   int
	server *http.Server
}

func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	bookings api.BookingService,
	items api.ItemService,
	users api.UserService,
	requests *prometheus.CounterVec,
) *App {
	router := api.NewRouter(log, bookings, items, users, requests)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{log: log, port: cfg.Port, server: server}
}

// MustRun runs the HTTP server and panics if it fails to start
func (a *App) MustRun() {
	err := a.Run()
	if errors.Is(err, http.ErrServerClosed) {
		a.log.Info("HTTP server closed")
	} else if err != nil {
		a.log.Error("failed to start HTTP server", sl.Err(err))
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "httpserverapp.Run"
	log := a.log.With(slog.String("op", op), slog.Int("port", a.port))

	log.Info("HTTP server is running", slog.String("addr", a.server.Addr))

	if err := a.server.ListenAndServe(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "httpserverapp.Stop"

	a.log.With(slog.String("op", op), slog.Int("port", a.port)).
		Info("stopping HTTP server")

	return a.server.Shutdown(ctx)
}
