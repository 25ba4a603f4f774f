package contract

import (
	"context"

	"movie-match-be/internal/entity"
	"movie-match-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MovieRepository interface {
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Movie, error)
	Create(ctx context.Context, movie *entity.Movie) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	// MatchMovies calls the match_movies function: rows ranked by similarity
	// of their embedding to the query, at most count of them.
	MatchMovies(ctx context.Context, embedding []float32, count int) ([]*entity.Movie, error)
}
