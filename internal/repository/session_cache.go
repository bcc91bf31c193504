package repository

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/futig/mock-interview/internal/entity"
)

// SessionCache keeps live sessions in memory. Entries expire ttl after their
// last touch; onEvict runs for expired and deleted entries alike.
type SessionCache[T any] struct {
	cache *gocache.Cache
}

func NewSessionCache[T any](ttl, cleanupInterval time.Duration, onEvict func(id string, value T)) *SessionCache[T] {
	c := gocache.New(ttl, cleanupInterval)
	if onEvict != nil {
		c.OnEvicted(func(id string, v interface{}) {
			if value, ok := v.(T); ok {
				onEvict(id, value)
			}
		})
	}
	return &SessionCache[T]{cache: c}
}

// Create stores value under a new id.
func (s *SessionCache[T]) Create(id string, value T) error {
	if err := s.cache.Add(id, value, gocache.DefaultExpiration); err != nil {
		return fmt.Errorf("create session %s: %w", id, err)
	}
	return nil
}

// Get returns the session and extends its lifetime.
func (s *SessionCache[T]) Get(id string) (T, error) {
	var zero T
	v, found := s.cache.Get(id)
	if !found {
		return zero, entity.ErrSessionNotFound
	}
	value, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("session %s has unexpected type %T", id, v)
	}
	// Replace keeps the value and resets the expiration
	_ = s.cache.Replace(id, value, gocache.DefaultExpiration)
	return value, nil
}

func (s *SessionCache[T]) Delete(id string) error {
	if _, found := s.cache.Get(id); !found {
		return entity.ErrSessionNotFound
	}
	s.cache.Delete(id)
	return nil
}

func (s *SessionCache[T]) Count() int {
	return s.cache.ItemCount()
}

// Flush removes every session, running onEvict for each.
func (s *SessionCache[T]) Flush() {
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}
