// Package sessionstore keeps maze sessions in a bounded, expiring in-memory cache.
package sessionstore

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var _ i.SessionStore = &LRUStore{}

// LRUStore evicts the least recently used session once size is reached, and any session
// older than the TTL.
type LRUStore struct {
	cache *expirable.LRU[uuid.UUID, *dmn.Session]
}

// NewLRUStore creates a store holding at most size sessions for ttl each.
// onEvict, when not nil, is called with the ID of every evicted session.
func NewLRUStore(size int, ttl time.Duration, onEvict func(uuid.UUID)) (*LRUStore, error) {
	if size <= 0 {
		return nil, errors.New("session store size must be positive")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	var evict expirable.EvictCallback[uuid.UUID, *dmn.Session]
	if onEvict != nil {
		evict = func(id uuid.UUID, _ *dmn.Session) {
			onEvict(id)
		}
	}
	return &LRUStore{cache: expirable.NewLRU(size, evict, ttl)}, nil
}

// Save implements i.SessionStore.
func (s *LRUStore) Save(session *dmn.Session) {
	s.cache.Add(session.ID, session)
}

// ByID implements i.SessionStore.
func (s *LRUStore) ByID(id uuid.UUID) (*dmn.Session, bool) {
	return s.cache.Get(id)
}

// Delete implements i.SessionStore.
func (s *LRUStore) Delete(id uuid.UUID) {
	s.cache.Remove(id)
}

// Len implements i.SessionStore.
func (s *LRUStore) Len() int {
	return s.cache.Len()
}
