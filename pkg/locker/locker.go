// Package locker сериализует изменения одного календаря между запросами и инстансами.
package locker

import (
	"context"
	"errors"
)

var (
	// ErrLockTimeout возвращается, если блокировку не удалось получить за время ожидания
	ErrLockTimeout = errors.New("locker: timed out waiting for lock")

	// ErrLockLost возвращается при освобождении блокировки, срок аренды которой истек
	ErrLockLost = errors.New("locker: lock lost before release")
)

// Release освобождает полученную блокировку
type Release func(ctx context.Context) error
