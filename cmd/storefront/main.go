package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/profile"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	log := newLogger()

	if err := run(log); err != nil {
		log.WithError(err).Fatal("storefront stopped")
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	return log
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openKV: %w", err)
	}
	defer closeKV()

	catalogClient := catalog.New(cfg.CatalogBaseURL, cfg.HTTPTimeout, log)
	profileClient := profile.New(cfg.ProfileBaseURL, cfg.HTTPTimeout, log)

	carts, err := service.NewCartStore(kv, catalogClient,
		service.WithKey(cfg.CartKey),
		service.WithCurrency(cfg.Currency),
		service.WithEnrichConcurrency(cfg.EnrichConcurrency),
		service.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("service.NewCartStore: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewServer(carts, catalogClient, profileClient, cfg.ProfileUserID, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"backend": cfg.KVBackend,
		}).Info("storefront listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func openKV(ctx context.Context, cfg config.Config) (port.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.KVBackend {
	case config.BackendFile:
		kv, err := repository.NewFileKV(cfg.KVFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFileKV: %w", err)
		}
		return kv, noop, nil

	case config.BackendRedis:
		client, err := repository.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewRedisClient: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedisKV(client, ""), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewPostgresKV(pool), pool.Close, nil

	default:
		return repository.NewMemoryKV(), noop, nil
	}
}
