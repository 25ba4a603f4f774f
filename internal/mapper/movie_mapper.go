package mapper

import (
	"strconv"

	"movie-match-be/internal/catalog"
	"movie-match-be/internal/entity"
	"movie-match-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MovieMapper struct{}

func NewMovieMapper() *MovieMapper {
	return &MovieMapper{}
}

func (m *MovieMapper) ToEntity(e *model.Movie) *entity.Movie {
	if e == nil {
		return nil
	}

	var embedding []float32
	if e.Embedding != nil {
		embedding = e.Embedding.Slice()
	}

	return &entity.Movie{
		Id:          e.Id,
		Title:       e.Title,
		ReleaseYear: deref(e.ReleaseYear),
		Description: deref(e.Description),
		Embedding:   embedding,
	}
}

func (m *MovieMapper) ToModel(e *entity.Movie) *model.Movie {
	if e == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(e.Embedding) > 0 {
		v := pgvector.NewVector(e.Embedding)
		embedding = &v
	}

	return &model.Movie{
		Id:          e.Id,
		Title:       e.Title,
		ReleaseYear: optional(e.ReleaseYear),
		Description: optional(e.Description),
		Embedding:   embedding,
	}
}

func (m *MovieMapper) MatchToEntity(r *model.MovieMatch) *entity.Movie {
	if r == nil {
		return nil
	}
	return &entity.Movie{
		Id:          r.Id,
		Title:       r.Title,
		ReleaseYear: deref(r.ReleaseYear),
		Description: deref(r.Description),
		Similarity:  r.Similarity,
	}
}

func (m *MovieMapper) ToEntities(models []*model.Movie) []*entity.Movie {
	entities := make([]*entity.Movie, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

// FromCatalog converts a catalog entry into a new, not yet persisted record.
// A zero year means unknown.
func (m *MovieMapper) FromCatalog(e catalog.Entry) *entity.Movie {
	year := ""
	if e.ReleaseYear != 0 {
		year = strconv.Itoa(e.ReleaseYear)
	}
	return &entity.Movie{
		Title:       e.Title,
		ReleaseYear: year,
		Description: e.Content,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
