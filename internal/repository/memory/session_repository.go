package memory

import (
	"context"
	"time"

	"movie-match-be/internal/entity"
	"movie-match-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired ones every ttl/6.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, ttl/6),
	}
}

// Save and Get copy the session so callers never share state through the
// cache. Matches is replaced wholesale, never edited, so a shallow copy does.
func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	c := *session
	r.cache.Set(session.Id, &c, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*entity.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		c := *x.(*entity.Session)
		return &c, nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
