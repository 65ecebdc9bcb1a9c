package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"labBooker/internal/config"
	"labBooker/internal/http-server/handlers/booking/cancelBooking"
	"labBooker/internal/http-server/handlers/booking/checkAvailability"
	"labBooker/internal/http-server/handlers/booking/confirmBooking"
	"labBooker/internal/http-server/handlers/booking/createBooking"
	"labBooker/internal/http-server/handlers/booking/deleteBooking"
	"labBooker/internal/http-server/handlers/booking/getBooking"
	"labBooker/internal/http-server/handlers/booking/listBookings"
	"labBooker/internal/http-server/handlers/booking/updateBooking"
	"labBooker/internal/http-server/handlers/notification/labStatus"
	"labBooker/internal/http-server/handlers/notification/listNotifications"
	"labBooker/internal/http-server/handlers/notification/respondNotification"
	"labBooker/internal/http-server/handlers/reminder/runReminders"
	"labBooker/internal/http-server/middleware/mwcaller"
	"labBooker/internal/http-server/middleware/mwlogger"
	"labBooker/internal/lib/logger/handlers/slogpretty"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/notifier"
	"labBooker/internal/notifier/mail"
	"labBooker/internal/notifier/rabbitmq"
	"labBooker/internal/services/availability"
	"labBooker/internal/services/booking"
	"labBooker/internal/services/notification"
	"labBooker/internal/storage"
	"labBooker/internal/storage/memory"
	"labBooker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type store interface {
	storage.BookingStore
	storage.NotificationStore
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting lab booker", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))
	log.Debug("Debug messages are enabled")

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid time zone", sl.Err(err))
		os.Exit(1)
	}

	st, closeStore, err := setupStorage(cfg, log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	checker := availability.New(log, st)
	bookings := booking.New(log, st, checker)

	var delivery []notifier.Notifier
	if m := mail.New(log, cfg.SMTP); m != nil {
		delivery = append(delivery, m)
	}
	delivery = append(delivery, rabbitmq.NewPublisher(cfg.RabbitMQ, log))

	notifications := notification.New(log, st,
		notification.WithLocation(loc),
		notification.WithNotifier(notifier.Multi(delivery...)),
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwcaller.New(log))

	authority := mwcaller.RequireRole(mwcaller.AuthorityRoles...)

	router.Handle("/metrics", promhttp.Handler())

	router.Post("/availability/check", checkAvailability.New(log, checker))

	router.Route("/bookings", func(r chi.Router) {
		r.Get("/", listBookings.New(log, bookings))
		r.With(mwcaller.Require).Post("/", createBooking.New(log, bookings, notifications))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getBooking.New(log, bookings))
			r.Patch("/", updateBooking.New(log, bookings))
			r.With(authority).Delete("/", deleteBooking.New(log, bookings))
			r.Post("/confirm", confirmBooking.New(log, bookings))
			r.Post("/cancel", cancelBooking.New(log, bookings))
		})
	})

	router.Route("/notifications", func(r chi.Router) {
		r.Use(mwcaller.Require)

		r.Get("/received", listNotifications.NewReceived(log, notifications))
		r.Get("/sent", listNotifications.NewSent(log, notifications))

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/accept", respondNotification.NewAccept(log, notifications))
			r.Post("/reject", respondNotification.NewReject(log, notifications))
			r.Post("/read", respondNotification.NewMarkRead(log, notifications))
			r.With(authority).Post("/confirm-lab", labStatus.NewConfirm(log, notifications))
			r.With(authority).Post("/cancel-lab", labStatus.NewCancel(log, notifications))
		})
	})

	router.With(authority).Post("/reminders/run", runReminders.New(log, notifications))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reminder.Interval > 0 {
		go runReminderTicker(ctx, log, notifications, cfg.Reminder.Interval)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.Timeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeStore(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg *config.Config, log *slog.Logger) (store, func() error, error) {
	switch cfg.Storage {
	case storageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(log), func() error { return nil }, nil
	case storagePostgres, "":
		pg, err := postgres.InitDB(&cfg.Database, cfg.LabID)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Database.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err = pg.Migrate(ctx); err != nil {
				_ = pg.Close()
				return nil, nil, err
			}
			log.Info("database schema applied")
		}

		return pg, pg.Close, nil
	default:
		return nil, nil, errors.New("unknown storage " + cfg.Storage)
	}
}

// runReminderTicker runs the reminder pass on every tick until ctx is done.
func runReminderTicker(ctx context.Context, log *slog.Logger, svc *notification.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("reminder ticker started", slog.String("interval", interval.String()))

	for {
		select {
		case <-ticker.C:
			if _, err := svc.RunReminderPass(ctx, svc.Today()); err != nil {
				log.Error("failed to run reminder pass", sl.Err(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
