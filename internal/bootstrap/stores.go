package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Domenick1991/boxoffice/config"
	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores are the record stores of the four collections on one backend.
type Stores struct {
	Movies    repository.RecordStore[domain.Movie]
	Customers repository.RecordStore[domain.Customer]
	Sessions  repository.RecordStore[domain.Session]
	Tickets   repository.RecordStore[domain.Ticket]

	pool *pgxpool.Pool
}

// OpenStores builds the stores for cfg.Backend. Close releases the database
// pool of the postgres backend.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Movies:    repository.NewPGStore[domain.Movie](pool, "movies"),
			Customers: repository.NewPGStore[domain.Customer](pool, "customers"),
			Sessions:  repository.NewPGStore[domain.Session](pool, "sessions"),
			Tickets:   repository.NewPGStore[domain.Ticket](pool, "tickets"),
			pool:      pool,
		}, nil
	default:
		s := cfg.Storage
		return &Stores{
			Movies:    repository.NewXMLStore[domain.Movie](s.Path(s.MoviesFile), "movies", "movie"),
			Customers: repository.NewXMLStore[domain.Customer](s.Path(s.CustomersFile), "customers", "customer"),
			Sessions:  repository.NewXMLStore[domain.Session](s.Path(s.SessionsFile), "sessions", "session"),
			Tickets:   repository.NewXMLStore[domain.Ticket](s.Path(s.TicketsFile), "tickets", "ticket"),
		}, nil
	}
}

func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// NewLogger returns a text logger on stderr at the configured level.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
