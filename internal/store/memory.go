package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloud-ru/estate-loan-calculator/internal/metrics"
)

// defaultCleanupInterval используется, если TTL не задан
const defaultCleanupInterval = time.Minute

type entry struct {
	rec       *Record
	expiresAt time.Time
}

// MemoryStore - потокобезопасное хранилище в памяти с TTL.
// Используется, когда Redis не настроен.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryStore создает хранилище и запускает фоновую очистку устаревших записей
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Save сохраняет запись на время TTL
func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[rec.ID] = entry{rec: rec, expiresAt: s.now().Add(s.ttl)}
	metrics.StoreOperations.WithLabelValues("memory", "save", "ok").Inc()
	return nil
}

// Get возвращает запись или ErrNotFound
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok || s.now().After(e.expiresAt) {
		metrics.StoreOperations.WithLabelValues("memory", "get", "miss").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	metrics.StoreOperations.WithLabelValues("memory", "get", "hit").Inc()
	return e.rec, nil
}

// Len возвращает количество записей, включая еще не удаленные устаревшие
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close останавливает фоновую очистку
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) cleanupLoop() {
	interval := s.ttl
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
