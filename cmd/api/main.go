// Package main é o ponto de entrada do serviço que recebe os webhooks da Membros
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/magnani/membros-go/internal/config"
	"github.com/magnani/membros-go/internal/handlers"
	"github.com/magnani/membros-go/internal/logging"
	"github.com/magnani/membros-go/pkg/membros"
	"github.com/magnani/membros-go/pkg/transport"
	"github.com/magnani/membros-go/pkg/webhook"
)

const serviceName = "membros-webhooks"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("erro ao carregar configurações: %v", err)
	}

	logger, err := logging.New(cfg.LoggingConfig(serviceName))
	if err != nil {
		log.Fatalf("erro ao criar logger: %v", err)
	}
	defer logging.Sync(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", zap.String("port", cfg.Port))

	orders, err := newOrders(ctx, cfg, logger)
	if err != nil {
		return err
	}

	store, readiness, closeStore, err := newDedupStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	wh := webhook.NewHandler(cfg.Webhook.Secret,
		webhook.WithLogger(logger),
		webhook.WithStore(store, cfg.Webhook.DedupTTL),
	)
	if cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET not set, signatures will not be verified")
	}
	handlers.NewPaymentEvents(orders, logger).Register(wh)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(wh, readiness, serviceName, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("webhook_path", handlers.WebhookPath),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// newOrders cria o cliente da API quando há credenciais e valida a conexão
func newOrders(ctx context.Context, cfg *config.Config, logger *zap.Logger) (handlers.OrderRetriever, error) {
	if !cfg.HasCredentials() {
		logger.Warn("membros credentials not set, events will only be logged")
		return nil, nil
	}

	opts := cfg.ClientOptions()
	opts.Logger = logger.Named("membros")
	opts.Listener = transport.NewZapListener(logger.Named("membros"))

	client, err := membros.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Membros: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx); err != nil {
		logger.Warn("membros api ping failed", zap.Error(err))
	} else {
		logger.Info("membros api reachable", zap.String("project_id", cfg.Membros.ProjectID))
	}

	return client.Orders, nil
}

// newDedupStore usa Redis quando REDIS_ADDR está definido e memória caso contrário
func newDedupStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (webhook.Store, func() bool, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("webhook dedup store: memory")
		return webhook.NewMemoryStore(), nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}
	logger.Info("webhook dedup store: redis", zap.String("addr", cfg.Redis.Addr))

	readiness := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
	return webhook.NewRedisStore(client, ""), readiness, closeFn, nil
}
