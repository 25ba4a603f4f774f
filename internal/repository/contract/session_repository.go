package contract

import (
	"context"

	"movie-match-be/internal/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
