package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/cloud-ru/estate-loan-calculator/internal/metrics"
)

const keyPrefix = "loan-schedule:"

// RedisStore хранит расчеты в Redis. Все обращения проходят через circuit breaker,
// чтобы недоступный Redis не задерживал ответы калькулятора.
type RedisStore struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     newCircuitBreaker("redis-results", logger),
		ttl:    ttl,
		logger: logger,
	}
}

// NewRedisClient создает клиент с короткими таймаутами
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save сериализует запись в JSON и сохраняет ее с TTL
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, keyPrefix+rec.ID, data, s.ttl).Err()
	})
	if err != nil {
		metrics.StoreOperations.WithLabelValues("redis", "save", "error").Inc()
		return s.wrap(err)
	}
	metrics.StoreOperations.WithLabelValues("redis", "save", "ok").Inc()
	return nil
}

// Get читает запись; отсутствие ключа не считается отказом Redis
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	out, err := s.cb.Execute(func() (interface{}, error) {
		data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		metrics.StoreOperations.WithLabelValues("redis", "get", "error").Inc()
		return nil, s.wrap(err)
	}

	data, _ := out.([]byte)
	if data == nil {
		metrics.StoreOperations.WithLabelValues("redis", "get", "miss").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	metrics.StoreOperations.WithLabelValues("redis", "get", "hit").Inc()
	return &rec, nil
}

// Close закрывает соединения с Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) wrap(err error) error {
	if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn("redis store error", zap.Error(err))
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// newCircuitBreaker размыкает цепь после 5 запросов, из которых не меньше 60% неудачных
func newCircuitBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
