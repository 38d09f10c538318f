package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "calendar:lock:"
	retryInterval    = 25 * time.Millisecond
)

// releaseScript удаляет ключ, только если им все еще владеет этот держатель
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// RedisConfig параметры распределенного локера
type RedisConfig struct {
	KeyPrefix string
	// Lease срок аренды блокировки. Истекает сам, если держатель упал.
	Lease time.Duration
	// Wait сколько ждать освобождения занятой блокировки
	Wait time.Duration
}

// Redis распределенные блокировки на SET NX PX
type Redis struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedis создает локер поверх готового клиента
func NewRedis(client *redis.Client, cfg RedisConfig) *Redis {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.Lease <= 0 {
		cfg.Lease = 10 * time.Second
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 5 * time.Second
	}
	return &Redis{client: client, cfg: cfg}
}

// Acquire берет блокировку key, повторяя попытки до истечения Wait
func (r *Redis) Acquire(ctx context.Context, key string) (Release, error) {
	redisKey := r.cfg.KeyPrefix + key
	token := uuid.New().String()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Wait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.cfg.Lease).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("locker: set lock %s: %w", key, err)
		}
		if ok {
			return r.release(redisKey, token), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
	}
}

func (r *Redis) release(redisKey, token string) Release {
	return func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, r.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("locker: release lock %s: %w", redisKey, err)
		}
		if deleted == 0 {
			return fmt.Errorf("%w: %s", ErrLockLost, redisKey)
		}
		return nil
	}
}
