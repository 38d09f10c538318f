package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Local блокировки в памяти процесса. Подходит для одного инстанса и тестов.
type Local struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

// NewLocal создает локальный локер. wait ограничивает ожидание блокировки.
func NewLocal(wait time.Duration) *Local {
	return &Local{
		locks: make(map[string]chan struct{}),
		wait:  wait,
	}
}

// Acquire ждет освобождения key не дольше wait
func (l *Local) Acquire(ctx context.Context, key string) (Release, error) {
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		l.mu.Lock()
		held, busy := l.locks[key]
		if !busy {
			done := make(chan struct{})
			l.locks[key] = done
			l.mu.Unlock()
			return l.release(key, done), nil
		}
		l.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
	}
}

func (l *Local) release(key string, done chan struct{}) Release {
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			if l.locks[key] == done {
				delete(l.locks, key)
			}
			l.mu.Unlock()
			close(done)
		})
		return nil
	}
}
