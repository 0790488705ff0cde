package prometheusapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/HaruSatoru/shareit/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	log    *slog.Logger
	port   int
	reg    *prometheus.Registry
	server *http.Server

	// RequestsCounter counts handled HTTP requests by method, route and status.
	RequestsCounter *prometheus.CounterVec
	// BookingsCreated counts successfully created bookings.
	BookingsCreated prometheus.Counter
	// BookingConflicts counts bookings rejected due to an approved overlap.
	BookingConflicts prometheus.Counter
	// BookingDecisions counts owner decisions by resulting status.
	BookingDecisions *prometheus.CounterVec
}

func New(log *slog.Logger, port int) *App {
	reg := prometheus.NewRegistry()

	requests := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of handled HTTP requests.",
	}, []string{"method", "route", "status"})

	created := promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of created bookings.",
	})

	conflicts := promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Total number of bookings rejected due to time overlap.",
	})

	decisions := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "booking_decisions_total",
		Help: "Total number of booking decisions by resulting status.",
	}, []string{"status"})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics e.g. to support exemplars.
			EnableOpenMetrics: true,
		},
	))

	return &App{
		log:              log,
		port:             port,
		reg:              reg,
		server:           &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux},
		RequestsCounter:  requests,
		BookingsCreated:  created,
		BookingConflicts: conflicts,
		BookingDecisions: decisions,
	}
}

func (a *App) MustRun() {
	err := a.Run()
	if errors.Is(err, http.ErrServerClosed) {
		a.log.Info("Prometheus server closed", sl.Err(err))
	} else if err != nil {
		a.log.Error("Failed to start Prometheus", sl.Err(err))
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "prometheusapp.Run"
	log := a.log.With(slog.String("op", op), slog.Int("port", a.port))

	log.Info("exposing Prometheus metrics")

	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	const op = "prometheusapp.Stop"
	a.log.With(slog.String("op", op)).Info("stopping Prometheus server")

	return a.server.Shutdown(ctx)
}
