package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/boxoffice/config"
	"github.com/Domenick1991/boxoffice/internal/bootstrap"
	"github.com/Domenick1991/boxoffice/internal/cache"
	"github.com/Domenick1991/boxoffice/internal/kafka"
	"github.com/Domenick1991/boxoffice/internal/service/customers"
	"github.com/Domenick1991/boxoffice/internal/service/movies"
	"github.com/Domenick1991/boxoffice/internal/service/reports"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/Domenick1991/boxoffice/internal/service/tickets"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := bootstrap.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()
	logger.Info("storage ready", "backend", cfg.Storage.Backend)

	order, err := sessions.ParseCheckOrder(cfg.BoxOffice.SeatCheckOrder)
	if err != nil {
		return err
	}
	sessionOpts := []sessions.SessionServiceOption{
		sessions.WithCheckOrder(order),
		sessions.WithLogger(logger.With("component", "sessions")),
	}
	ticketOpts := []tickets.TicketServiceOption{
		tickets.WithLogger(logger.With("component", "tickets")),
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.BoxOffice.SessionsCacheSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, running without seat holds", "addr", cfg.Redis.Addr, "error", err)
		} else {
			sessionOpts = append(sessionOpts, sessions.WithCache(redisCache))
			ticketOpts = append(ticketOpts, tickets.WithSeatLocker(redisCache, time.Duration(cfg.BoxOffice.SeatHoldSeconds)*time.Second))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger.With("component", "kafka"))
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unreachable, events will be dropped until it recovers", "error", err)
		}
		sessionOpts = append(sessionOpts, sessions.WithProducer(producer, cfg.Kafka.EventsTopic))
		ticketOpts = append(ticketOpts,
			tickets.WithProducer(producer, cfg.Kafka.EventsTopic),
			tickets.WithPublishRetries(cfg.Kafka.PublishRetries),
		)
	}

	movieService, err := movies.NewMovieService(ctx, stores.Movies, movies.WithLogger(logger.With("component", "movies")))
	if err != nil {
		return err
	}
	customerService, err := customers.NewCustomerService(ctx, stores.Customers, customers.WithLogger(logger.With("component", "customers")))
	if err != nil {
		return err
	}
	sessionService, err := sessions.NewSessionService(ctx, stores.Sessions, movieService, sessionOpts...)
	if err != nil {
		return err
	}
	ticketService, err := tickets.NewTicketService(ctx, stores.Tickets, customerService, sessionService, ticketOpts...)
	if err != nil {
		return err
	}
	reportService := reports.NewReportService(movieService, sessionService, ticketService,
		reports.WithLogger(logger.With("component", "reports")))

	return bootstrap.Run(ctx, cfg, bootstrap.Services{
		Movies:    movieService,
		Customers: customerService,
		Sessions:  sessionService,
		Tickets:   ticketService,
		Reports:   reportService,
	}, logger)
}
