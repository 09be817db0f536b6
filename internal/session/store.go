// Package session keeps upload sessions in memory. Sessions are the
// coarse cancellation unit: discarding or letting one expire abandons
// the pipeline at whatever phase it reached.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/robiparvez/openproject-worklogger/internal/model"
)

// Store holds live sessions keyed by id, bounded and expiring so
// abandoned uploads do not accumulate.
type Store struct {
	cache *expirable.LRU[string, *model.Session]
}

// Config sizes the store.
type Config struct {
	MaxSessions int
	TTL         time.Duration
}

// NewStore creates a session store.
func NewStore(cfg Config) *Store {
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 64
	}
	return &Store{
		cache: expirable.NewLRU[string, *model.Session](maxSessions, nil, cfg.TTL),
	}
}

// Create allocates a new session in the Parsed phase holding the given
// entries.
func (s *Store) Create(entries []*model.WorkLogEntry, dateCount int) *model.Session {
	sess := &model.Session{
		ID:        uuid.NewString(),
		Phase:     model.PhaseParsed,
		Entries:   entries,
		DateCount: dateCount,
		CreatedAt: time.Now(),
	}
	s.cache.Add(sess.ID, sess)
	return sess
}

// Get returns the session with the given id, or nil.
func (s *Store) Get(id string) *model.Session {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil
	}
	return sess
}

// Delete discards a session.
func (s *Store) Delete(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
