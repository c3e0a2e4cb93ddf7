package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-community-events/config"
	"github.com/oksasatya/go-community-events/internal/container"
	pginfra "github.com/oksasatya/go-community-events/internal/infrastructure/postgres"
	"github.com/oksasatya/go-community-events/internal/infrastructure/search"
	"github.com/oksasatya/go-community-events/internal/interface/middleware"
	"github.com/oksasatya/go-community-events/internal/router"
	"github.com/oksasatya/go-community-events/pkg/helpers"
	"github.com/oksasatya/go-community-events/pkg/mailer"
	"github.com/oksasatya/go-community-events/pkg/notify"
	"github.com/oksasatya/go-community-events/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	infra := container.Infra{Config: cfg, Logger: logger, DB: pool}

	// Redis backs rate limiting only; without it the limiters pass everything through.
	if rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
		infra.Redis = rdb
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		infra.Storage = helpers.NewGCSUploader(gcsClient, cfg.GCSBucket)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		indexer := search.NewEventIndexer(es, cfg.ESEventsIndex)
		if err := indexer.EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("elasticsearch index not ready, full-text search may fail")
		}
		infra.Index = indexer
	}

	sink, closeSink := notificationSink(cfg, logger)
	defer closeSink()
	dispatcher := notify.NewDispatcher(sink, logger, cfg.NotifyQueueSize, cfg.NotifyWorkers, cfg.NotifySendTimeout)
	infra.Notifier = dispatcher

	infra.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.JWTIssuer)

	c := container.New(infra)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.AccessLog(logger))
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	// Requests are done; flush what they queued.
	if err := dispatcher.Close(ctxShutdown); err != nil {
		logger.WithError(err).Warn("notification queue not fully drained")
	}
	logger.Info("server exited properly")
}

// notificationSink publishes to the email worker's queue when mail is enabled and RabbitMQ is
// reachable, and logs messages otherwise.
func notificationSink(cfg *config.Config, logger *logrus.Logger) (notify.Sink, func()) {
	logOnly := notify.LogSink{Logger: logger}
	if !cfg.MailSendEnabled || cfg.RabbitMQURL == "" {
		logger.Info("mail sending disabled, notifications are logged only")
		return logOnly, func() {}
	}
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, notifications are logged only")
		return logOnly, func() {}
	}
	return mailer.NewQueueSink(pub), pub.Close
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
