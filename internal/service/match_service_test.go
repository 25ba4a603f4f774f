package service

import (
	"context"
	"errors"
	"testing"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestMatchMovies(t *testing.T) {
	repo := &fakeMovieRepository{rows: testMovies("A", "B")}
	svc := NewMatchService(repo, logger.NewNopLogger())

	got := svc.MatchMovies(context.Background(), []float32{1})
	assert.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
}

func TestMatchMoviesStoreErrorIsEmpty(t *testing.T) {
	repo := &fakeMovieRepository{rows: testMovies("A"), matchErr: errors.New("function match_movies does not exist")}
	svc := NewMatchService(repo, logger.NewNopLogger())

	got := svc.MatchMovies(context.Background(), []float32{1})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSampleMovies(t *testing.T) {
	repo := &fakeMovieRepository{rows: testMovies("A", "B", "C", "D", "E", "F", "G")}
	svc := NewMatchService(repo, logger.NewNopLogger())

	got := svc.SampleMovies(context.Background(), 0)
	assert.Len(t, got, constant.SampleCount)
	assert.Equal(t, constant.SampleCount, repo.lastLimit)

	got = svc.SampleMovies(context.Background(), 2)
	assert.Len(t, got, 2)
}

func TestSampleMoviesDropsEmbeddings(t *testing.T) {
	rows := testMovies("A", "B")
	for _, m := range rows {
		m.Embedding = []float32{0.1, 0.2, 0.3}
	}
	svc := NewMatchService(&fakeMovieRepository{rows: rows}, logger.NewNopLogger())

	got := svc.SampleMovies(context.Background(), 2)
	assert.Len(t, got, 2)
	for _, m := range got {
		assert.Nil(t, m.Embedding)
	}
}

func TestSampleMoviesStoreErrorIsEmpty(t *testing.T) {
	repo := &fakeMovieRepository{findErr: errors.New("timeout")}
	svc := NewMatchService(repo, logger.NewNopLogger())

	assert.Empty(t, svc.SampleMovies(context.Background(), 5))
}
