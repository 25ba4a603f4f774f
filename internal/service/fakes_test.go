package service

import (
	"context"
	"errors"
	"sync"

	"movie-match-be/internal/entity"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/repository/specification"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	vec   []float32
	err   error
	texts []string
	// failOn makes Embed fail for these exact inputs
	failOn map[string]bool
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if f.failOn[text] {
		return nil, errors.New("embed failed")
	}
	return f.vec, f.err
}

func (f *fakeEmbedder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

type fakeCompleter struct {
	mu     sync.Mutex
	text   string
	err    error
	calls  int
	block  chan struct{} // when set, Explain waits for it to close
	movies []string
}

func (f *fakeCompleter) Explain(_ context.Context, _ string, movie *entity.Movie) (string, error) {
	f.mu.Lock()
	f.calls++
	f.movies = append(f.movies, movie.Title)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.text, f.err
}

type fakeMatcher struct {
	ranked  []*entity.Movie
	sample  []*entity.Movie
	rankedN int
	sampleN int
}

func (f *fakeMatcher) MatchMovies(context.Context, []float32) []*entity.Movie {
	f.rankedN++
	return f.ranked
}

func (f *fakeMatcher) SampleMovies(context.Context, int) []*entity.Movie {
	f.sampleN++
	return f.sample
}

// fakeMovieRepository is an in-memory movies collection.
type fakeMovieRepository struct {
	mu        sync.Mutex
	rows      []*entity.Movie
	countErr  error
	findErr   error
	matchErr  error
	createErr map[string]error // by title
	updateErr map[uuid.UUID]error
	lastLimit int
}

func (r *fakeMovieRepository) Count(context.Context, ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), r.countErr
}

func (r *fakeMovieRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	missingOnly := false
	limit := 0
	for _, s := range specs {
		switch v := s.(type) {
		case specification.MissingEmbedding:
			missingOnly = true
		case specification.Sample:
			limit = v.N
		}
	}
	r.lastLimit = limit
	var out []*entity.Movie
	for _, m := range r.rows {
		if missingOnly && m.HasEmbedding() {
			continue
		}
		c := *m
		out = append(out, &c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeMovieRepository) Create(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createErr[movie.Title]; err != nil {
		return err
	}
	movie.Id = uuid.New()
	c := *movie
	r.rows = append(r.rows, &c)
	return nil
}

func (r *fakeMovieRepository) UpdateEmbedding(_ context.Context, id uuid.UUID, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[id]; err != nil {
		return err
	}
	for _, m := range r.rows {
		if m.Id == id {
			m.Embedding = embedding
		}
	}
	return nil
}

func (r *fakeMovieRepository) MatchMovies(context.Context, []float32, int) ([]*entity.Movie, error) {
	if r.matchErr != nil {
		return nil, r.matchErr
	}
	return r.rows, nil
}

func testMovies(titles ...string) []*entity.Movie {
	out := make([]*entity.Movie, len(titles))
	for i, t := range titles {
		out[i] = &entity.Movie{Id: uuid.New(), Title: t, ReleaseYear: "2015", Description: t + "!"}
	}
	return out
}

// flakySessionRepository fails the Nth Save (1-based) and delegates the rest.
type flakySessionRepository struct {
	contract.SessionRepository
	mu         sync.Mutex
	saves      int
	failSaveOn int
}

func (r *flakySessionRepository) Save(ctx context.Context, sess *entity.Session) error {
	r.mu.Lock()
	r.saves++
	fail := r.saves == r.failSaveOn
	r.mu.Unlock()
	if fail {
		return errors.New("redis: i/o timeout")
	}
	return r.SessionRepository.Save(ctx, sess)
}

type panickingMatcher struct{}

func (panickingMatcher) MatchMovies(context.Context, []float32) []*entity.Movie {
	panic("match_movies exploded")
}

func (panickingMatcher) SampleMovies(context.Context, int) []*entity.Movie { return nil }
