package session

import (
	"time"

	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps sessions in memory with a sliding TTL. Nothing survives a
// restart.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl, cleanupInterval time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		now:   now,
	}
}

func (s *Store) Create() *core.Session {
	sess := core.NewSession(uuid.NewString(), s.now)
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns the session and extends its TTL.
func (s *Store) Get(id string) (*core.Session, bool) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := v.(*core.Session)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, sess, s.ttl)
	return sess, true
}

func (s *Store) Delete(id string) bool {
	if _, found := s.cache.Get(id); !found {
		return false
	}
	s.cache.Delete(id)
	return true
}

// Count includes expired sessions not yet swept by the janitor.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
