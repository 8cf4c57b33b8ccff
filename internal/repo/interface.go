package repo

import (
	"context"
	"errors"
)

var (
	ErrorUnavailable = errors.New("storage unavailable")
)

// KV определяет интерфейс хранилища ключ-значение для задач и темы.
// Последняя запись побеждает.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
