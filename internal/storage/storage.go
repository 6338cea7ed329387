// Package storage хранит сгенерированные ключевые пары в памяти процесса.
// Ключи никуда не сохраняются и пропадают при перезапуске.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xrymbos/rsa/internal/encryption/rsa"
)

var ErrNotFound = errors.New("key pair not found")

type Storage interface {
	// Put сохраняет ключевую пару и возвращает ее идентификатор.
	Put(ctx context.Context, keyPair *rsa.KeyPair) (string, error)
	Get(ctx context.Context, id string) (*rsa.KeyPair, error)
	Delete(ctx context.Context, id string) error
	// Evict удаляет ключевые пары, срок жизни которых истек к моменту now.
	Evict(ctx context.Context, now time.Time) int
}

type entry struct {
	keyPair *rsa.KeyPair
	expires time.Time
}

type MemoryStorage struct {
	sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage создает хранилище, в котором ключи живут ttl. При ttl == 0 ключи не истекают.
func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStorage) Put(_ context.Context, keyPair *rsa.KeyPair) (string, error) {
	s.Lock()
	defer s.Unlock()

	id := uuid.NewString()
	e := entry{keyPair: keyPair}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[id] = e
	return id, nil
}

func (s *MemoryStorage) Get(_ context.Context, id string) (*rsa.KeyPair, error) {
	s.RLock()
	defer s.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.expired(s.now()) {
		return nil, ErrNotFound
	}
	return e.keyPair, nil
}

func (s *MemoryStorage) Delete(_ context.Context, id string) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStorage) Evict(_ context.Context, now time.Time) int {
	s.Lock()
	defer s.Unlock()

	evicted := 0
	for id, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len возвращает число хранимых ключевых пар, включая истекшие, но еще не удаленные.
func (s *MemoryStorage) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.entries)
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}
