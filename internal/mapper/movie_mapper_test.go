package mapper

import (
	"testing"

	"movie-match-be/internal/catalog"
	"movie-match-be/internal/entity"
	"movie-match-be/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCatalog(t *testing.T) {
	m := NewMovieMapper()

	movie := m.FromCatalog(catalog.Entry{Title: "Heat", ReleaseYear: 1995, Content: "Cops and robbers."})
	assert.Equal(t, "Heat", movie.Title)
	assert.Equal(t, "1995", movie.ReleaseYear)
	assert.Equal(t, "Cops and robbers.", movie.Description)
	assert.Equal(t, "Heat (1995): Cops and robbers.", movie.EmbeddingDocument())

	noYear := m.FromCatalog(catalog.Entry{Title: "Untitled"})
	assert.Equal(t, "", noYear.ReleaseYear)
}

func TestToEntityNullColumns(t *testing.T) {
	m := NewMovieMapper()
	id := uuid.New()

	movie := m.ToEntity(&model.Movie{Id: id, Title: "Heat"})
	require.NotNil(t, movie)
	assert.Equal(t, id, movie.Id)
	assert.Equal(t, "", movie.ReleaseYear)
	assert.Equal(t, "", movie.Description)
	assert.False(t, movie.HasEmbedding())
	assert.Equal(t, "Heat (): ", movie.EmbeddingDocument())

	assert.Nil(t, m.ToEntity(nil))
}

func TestModelRoundTrip(t *testing.T) {
	m := NewMovieMapper()
	vec := pgvector.NewVector([]float32{0.1, 0.2})
	year := "1995"

	movie := m.ToEntity(&model.Movie{Id: uuid.New(), Title: "Heat", ReleaseYear: &year, Embedding: &vec})
	assert.Equal(t, []float32{0.1, 0.2}, movie.Embedding)

	back := m.ToModel(movie)
	require.NotNil(t, back.ReleaseYear)
	assert.Equal(t, "1995", *back.ReleaseYear)
	assert.Nil(t, back.Description)
	require.NotNil(t, back.Embedding)
	assert.Equal(t, []float32{0.1, 0.2}, back.Embedding.Slice())

	empty := m.ToModel(&entity.Movie{Title: "Heat"})
	assert.Nil(t, empty.Embedding)
}

func TestMatchToEntity(t *testing.T) {
	m := NewMovieMapper()
	desc := "A heist."

	movie := m.MatchToEntity(&model.MovieMatch{Title: "Heat", Description: &desc, Similarity: 0.82})
	assert.Equal(t, "A heist.", movie.Description)
	assert.Equal(t, "", movie.ReleaseYear)
	assert.InDelta(t, 0.82, movie.Similarity, 1e-9)
}
