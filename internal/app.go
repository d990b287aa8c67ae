package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-registry-api/config"
	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/services"
	"user-registry-api/internal/infrastructure/db/postgres"
	"user-registry-api/internal/infrastructure/db/postgres/user"
	"user-registry-api/internal/infrastructure/hasher"
	"user-registry-api/internal/infrastructure/metrics"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/interface/api/rest"
	"user-registry-api/internal/interface/api/rest/middleware"
	"user-registry-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	// a missing .env is fine, containers pass plain env vars
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	// dsn checks run before anything is opened or registered
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	a := &App{
		logger:   logger,
		cfg:      cfg,
		router:   r,
		mCounter: mCounter,
		// httpServer
		httpSrv: &http.Server{
			Addr:              cfg.App.Host + ":" + cfg.App.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if err = a.connect(ctx, dbDsn, rabbitDsn); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// connect opens the db pool and rabbitMQ. Whatever was opened before a
// failure stays on a so Close can release it.
func (a *App) connect(ctx context.Context, dbDsn, rabbitDsn string) error {
	// db
	if a.cfg.DB.AutoMigrate {
		if err := postgres.Migrate(a.logger, dbDsn); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	dbPool, err := postgres.New(ctx, a.logger, dbDsn)
	if err != nil {
		return err
	}
	a.db = dbPool

	// rabbitMQ
	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(a.cfg.MQ, a.logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = rmqConsumer

	return nil
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "", "dev", "development", gin.DebugMode:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.mq != nil && a.mq.GetConn() != nil && !a.mq.GetConn().IsClosed() {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)

	// services
	passwordHasher := hasher.NewBcrypt(a.cfg.Security.BCryptCost)
	userService := services.NewUserService(userRepo, passwordHasher, a.mq, a.mCounter)

	// controllers
	rest.NewUserController(a.router, userService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
