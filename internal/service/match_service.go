package service

import (
	"context"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/entity"
	"movie-match-be/internal/pkg/logger"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/repository/specification"
)

// IMatchService never returns errors: store failures are logged and reported
// as an empty result, so callers only check for emptiness.
type IMatchService interface {
	MatchMovies(ctx context.Context, embedding []float32) []*entity.Movie
	SampleMovies(ctx context.Context, limit int) []*entity.Movie
}

type matchService struct {
	movies contract.MovieRepository
	logger logger.ILogger
}

func NewMatchService(movies contract.MovieRepository, log logger.ILogger) IMatchService {
	return &matchService{
		movies: movies,
		logger: log,
	}
}

// MatchMovies returns at most five movies ranked by the store.
func (s *matchService) MatchMovies(ctx context.Context, embedding []float32) []*entity.Movie {
	matches, err := s.movies.MatchMovies(ctx, embedding, constant.MatchCount)
	if err != nil {
		s.logger.Error("MatchService", "match_movies failed", map[string]interface{}{"error": err})
		return []*entity.Movie{}
	}
	return matches
}

// SampleMovies returns unranked movies for the no-match fallback.
func (s *matchService) SampleMovies(ctx context.Context, limit int) []*entity.Movie {
	if limit <= 0 {
		limit = constant.SampleCount
	}
	movies, err := s.movies.FindAll(ctx, specification.Sample{N: limit})
	if err != nil {
		s.logger.Error("MatchService", "fallback sample failed", map[string]interface{}{"error": err})
		return []*entity.Movie{}
	}
	// matches are stored in the session; vectors are never rendered
	for _, m := range movies {
		m.Embedding = nil
	}
	return movies
}
