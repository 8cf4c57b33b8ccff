package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/config"
	"github.com/BuzzLyutic/tasklist/internal/repo"
)

// openStorage builds the KV adapter for the configured driver. The returned
// func releases it and is never nil on success.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (repo.KV, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("Using in-memory storage, tasks will not survive a restart")
		return repo.NewMemoryKV(), func() {}, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL) // Создаем новое соединение к БД
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil { // Пытаемся пингануть БД
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		kv := repo.NewPostgresKV(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("Successfully connected to the Database!")
		return kv, pool.Close, nil

	case config.DriverFile:
		kv, err := repo.NewFileKV(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open task file: %w", err)
		}
		logger.Info("Using file storage", zap.String("path", kv.Path()))
		return kv, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
