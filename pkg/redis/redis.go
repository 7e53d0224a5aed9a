package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrCacheMiss      = errors.New("cache miss")
	ErrVersionChanged = errors.New("cache entry invalidated since read")
)

// versionTTL bounds the life of invalidation counters.
const versionTTL = 31 * 24 * time.Hour

type IRedis interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// Version returns the invalidation counter of key, 0 if never invalidated.
	Version(ctx context.Context, key string) (int64, error)
	// SetJSONIfVersion writes value only while key's counter still equals
	// version, otherwise it returns ErrVersionChanged.
	SetJSONIfVersion(ctx context.Context, key string, value interface{}, expiration time.Duration, version int64) error
	// Invalidate deletes keys and bumps their counters.
	Invalidate(ctx context.Context, keys ...string) error
}

type redisClient struct {
	client *redis.Client
}

func New(addr string, password string, db int) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", addr))

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func NewFromClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

// MonthlyBudgetKey addresses the cached category budgets of one user for one yyyy-MM month.
func MonthlyBudgetKey(userID string, yearMonth string) string {
	return fmt.Sprintf("budget:month:%s:%s", userID, yearMonth)
}

func (r *redisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := jsoniter.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

func versionKey(key string) string {
	return key + ":version"
}

func (r *redisClient) Version(ctx context.Context, key string) (int64, error) {
	v, err := r.client.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version %s: %w", key, err)
	}
	return v, nil
}

func (r *redisClient) SetJSONIfVersion(ctx context.Context, key string, value interface{}, expiration time.Duration, version int64) error {
	payload, err := jsoniter.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	vKey := versionKey(key)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return ErrVersionChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, expiration)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionChanged), errors.Is(err, redis.TxFailedErr):
		return ErrVersionChanged
	default:
		return fmt.Errorf("redis set %s: %w", key, err)
	}
}

func (r *redisClient) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))
			pipe.Expire(ctx, versionKey(key), versionTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}
