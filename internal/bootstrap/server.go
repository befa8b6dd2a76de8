package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/boxoffice/api"
	"github.com/Domenick1991/boxoffice/config"
	"github.com/Domenick1991/boxoffice/internal/service/customers"
	"github.com/Domenick1991/boxoffice/internal/service/movies"
	"github.com/Domenick1991/boxoffice/internal/service/reports"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/Domenick1991/boxoffice/internal/service/tickets"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerSpec = "boxoffice.swagger.json"

// Services are the use cases exposed over HTTP.
type Services struct {
	Movies    movies.MovieUseCase
	Customers customers.CustomerUseCase
	Sessions  sessions.SessionUseCase
	Tickets   tickets.TicketUseCase
	Reports   reports.ReportUseCase
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
	logger     *slog.Logger
}

// Run starts the HTTP API (and the gRPC health server when an address is
// configured) and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *slog.Logger) error {
	return newServers(cfg, svc, logger).serve(ctx, cfg)
}

// serve stops every started server before returning, whether ctx ended or one
// of them failed.
func (s *Servers) serve(ctx context.Context, cfg *config.Config) error {
	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		s.logger.Info("grpc health server listening", "address", lis.Addr().String())
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	go func() {
		s.logger.Info("http server listening", "address", cfg.HTTP.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.logger.Error("server failed, shutting down", "error", err)
		if stopErr := s.stop(); stopErr != nil {
			return errors.Join(err, stopErr)
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down servers")
		return s.stop()
	}
}

func (s *Servers) stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.grpcServer != nil {
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func newServers(cfg *config.Config, svc Services, logger *slog.Logger) *Servers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           NewRouter(cfg.HTTP, svc, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer()
		s.health = health.NewServer()
		grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		s.health.SetServingStatus("boxoffice.v1.BoxOffice", grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return s
}

// NewRouter mounts every handler under /api/v1. The swagger UI is served at
// /docs when a spec directory is configured.
func NewRouter(cfg config.HTTPConfig, svc Services, logger *slog.Logger) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewMovieHandler(svc.Movies).Register(v1.Group("/movies"))
	api.NewCustomerHandler(svc.Customers).Register(v1.Group("/customers"))
	api.NewSessionHandler(svc.Sessions).Register(v1.Group("/sessions"))
	api.NewTicketHandler(svc.Tickets).Register(v1)
	api.NewReportHandler(svc.Reports, svc.Sessions).Register(v1)

	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerSpec))))
	}
	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
