package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/config"
	"github.com/BuzzLyutic/tasklist/internal/handler"
	"github.com/BuzzLyutic/tasklist/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task list over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8080)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Подключаем логгер
	logger, err := newLogger(cfg.Log, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Подключаем хранилище
	ctx := cmd.Context()
	kv, closeKV, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeKV()

	store := service.NewTaskStore(kv, logger, service.WithStorageKey(cfg.Storage.TasksKey))
	store.Load(ctx)
	themes := service.NewThemeService(kv, cfg.Storage.ThemeKey)

	srv := &http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.NewRouter(handler.NewTaskHandler(store, themes, logger), logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
