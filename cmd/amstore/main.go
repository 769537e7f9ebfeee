// Package main запускает HTTP-сервер магазина AM Store.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amstore/amstore-system/internal/config"
	"github.com/amstore/amstore-system/internal/handler"
	"github.com/amstore/amstore-system/internal/middleware"
	"github.com/amstore/amstore-system/internal/notify"
	"github.com/amstore/amstore-system/internal/service"
	"github.com/amstore/amstore-system/internal/storage"
	"github.com/amstore/amstore-system/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	kv, err := openStorage(cfg, sugar)
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}
	defer kv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := store.NewCatalog(ctx, kv, store.SeedProducts())
	if err != nil {
		sugar.Fatalw("catalog initialization error", "error", err.Error())
	}

	orders, err := store.NewOrders(ctx, kv)
	if err != nil {
		sugar.Fatalw("orders initialization error", "error", err.Error())
	}

	dispatcher := notify.NewTelegramDispatcher(cfg.TelegramBotToken, cfg.ChatIDs(), logger)

	svc := service.NewService(catalog, orders, dispatcher, cfg.AdminPassword)

	adminAuth := middleware.NewAdminAuth(cfg.AdminPassword)
	h := handler.NewHandler(svc, logger, adminAuth)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting amstore server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// openStorage выбирает хранилище по конфигурации: PostgreSQL, затем
// Redis, иначе память процесса.
func openStorage(cfg *config.Config, sugar *zap.SugaredLogger) (storage.KV, error) {
	if cfg.DatabaseURI != "" {
		return storage.NewPostgresKV(cfg.DatabaseURI)
	}
	if cfg.RedisAddr != "" {
		return storage.NewRedisKV(cfg.RedisAddr)
	}

	sugar.Warn("no storage configured, collections will not survive restart")
	return storage.NewMemoryKV(), nil
}
