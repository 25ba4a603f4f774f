package service

import (
	"context"
	"errors"
	"testing"

	"movie-match-be/internal/catalog"
	"movie-match-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	ps := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func testCatalog() ([]catalog.Entry, error) {
	return []catalog.Entry{
		{Title: "Alpha", ReleaseYear: 1999, Content: "first"},
		{Title: "Beta", ReleaseYear: 2004, Content: "second"},
		{Title: "Gamma", ReleaseYear: 2010, Content: "third"},
	}, nil
}

type progressRecorder struct {
	calls [][2]int
}

func (p *progressRecorder) record(done, total int) {
	p.calls = append(p.calls, [2]int{done, total})
}

func TestSeedIfEmpty(t *testing.T) {
	repo := &fakeMovieRepository{}
	embedder := &fakeEmbedder{vec: []float32{0.1, 0.2}}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, embedder, testCatalog, logger.NewNopLogger())

	progress := &progressRecorder{}
	report, err := svc.SeedIfEmpty(context.Background(), progress.record)
	require.NoError(t, err)

	assert.Equal(t, "seed", report.Operation)
	assert.False(t, report.Skipped)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress.calls)

	assert.Equal(t, []string{
		"Alpha (1999): first",
		"Beta (2004): second",
		"Gamma (2010): third",
	}, embedder.texts, "rows are embedded one at a time in catalog order")

	require.Len(t, repo.rows, 3)
	for _, m := range repo.rows {
		assert.True(t, m.HasEmbedding())
		assert.NotEqual(t, uuid.Nil, m.Id)
	}
	assert.Equal(t, "2004", repo.rows[1].ReleaseYear)
}

func TestSeedSkipsWhenMoviesExist(t *testing.T) {
	repo := &fakeMovieRepository{rows: testMovies("Existing")}
	embedder := &fakeEmbedder{vec: []float32{1}}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, embedder, testCatalog, logger.NewNopLogger())

	report, err := svc.SeedIfEmpty(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 0, embedder.calls())
	assert.Len(t, repo.rows, 1)
}

func TestSeedRowFailuresDoNotAbort(t *testing.T) {
	repo := &fakeMovieRepository{createErr: map[string]error{"Gamma": errors.New("duplicate key")}}
	embedder := &fakeEmbedder{
		vec:    []float32{1, 2},
		failOn: map[string]bool{"Alpha (1999): first": true},
	}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, embedder, testCatalog, logger.NewNopLogger())

	report, err := svc.SeedIfEmpty(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 3, embedder.calls(), "a failed row is not retried")

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Beta", repo.rows[0].Title)
}

func TestSeedEmptyEmbeddingCountsAsFailure(t *testing.T) {
	repo := &fakeMovieRepository{}
	embedder := &fakeEmbedder{vec: []float32{}}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, embedder, testCatalog, logger.NewNopLogger())

	report, err := svc.SeedIfEmpty(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Failed)
	assert.Empty(t, repo.rows)
}

func TestSeedCountError(t *testing.T) {
	repo := &fakeMovieRepository{countErr: errors.New("connection refused")}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, &fakeEmbedder{}, testCatalog, logger.NewNopLogger())

	_, err := svc.SeedIfEmpty(context.Background(), nil)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSeedCatalogError(t *testing.T) {
	broken := func() ([]catalog.Entry, error) { return nil, errors.New("bad catalog") }
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", &fakeMovieRepository{}, &fakeEmbedder{}, broken, logger.NewNopLogger())

	_, err := svc.SeedIfEmpty(context.Background(), nil)
	assert.EqualError(t, err, "bad catalog")
}

func TestBackfillMissingEmbeddings(t *testing.T) {
	rows := testMovies("Done", "Todo1", "Todo2", "Todo3")
	rows[0].Embedding = []float32{9}
	repo := &fakeMovieRepository{
		rows:      rows,
		updateErr: map[uuid.UUID]error{rows[2].Id: errors.New("row locked")},
	}
	embedder := &fakeEmbedder{vec: []float32{0.5}}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, embedder, testCatalog, logger.NewNopLogger())

	progress := &progressRecorder{}
	report, err := svc.BackfillMissingEmbeddings(context.Background(), progress.record)
	require.NoError(t, err)

	assert.Equal(t, "backfill", report.Operation)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, progress.calls, 3)
	assert.Equal(t, []string{
		"Todo1 (2015): Todo1!",
		"Todo2 (2015): Todo2!",
		"Todo3 (2015): Todo3!",
	}, embedder.texts)

	assert.Equal(t, []float32{9}, rows[0].Embedding)
	assert.Equal(t, []float32{0.5}, rows[1].Embedding)
	assert.Empty(t, rows[2].Embedding)
	assert.Equal(t, []float32{0.5}, rows[3].Embedding)
}

func TestBackfillNothingToDo(t *testing.T) {
	rows := testMovies("Done")
	rows[0].Embedding = []float32{1}
	embedder := &fakeEmbedder{vec: []float32{1}}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", &fakeMovieRepository{rows: rows}, embedder, testCatalog, logger.NewNopLogger())

	report, err := svc.BackfillMissingEmbeddings(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, embedder.calls())
}

func TestBackfillSelectError(t *testing.T) {
	repo := &fakeMovieRepository{findErr: errors.New("relation does not exist")}
	svc := NewMaintenanceService(newJobPubSub(t), "EMBED_MOVIE", repo, &fakeEmbedder{}, testCatalog, logger.NewNopLogger())

	_, err := svc.BackfillMissingEmbeddings(context.Background(), nil)
	assert.ErrorContains(t, err, "relation does not exist")
}

func TestMaintenanceRunsDoNotShareTopics(t *testing.T) {
	ps := newJobPubSub(t)
	first := &fakeMovieRepository{}
	second := &fakeMovieRepository{}
	embedder := &fakeEmbedder{vec: []float32{1}}

	a := NewMaintenanceService(ps, "EMBED_MOVIE", first, embedder, testCatalog, logger.NewNopLogger())
	b := NewMaintenanceService(ps, "EMBED_MOVIE", second, embedder, testCatalog, logger.NewNopLogger())

	_, err := a.SeedIfEmpty(context.Background(), nil)
	require.NoError(t, err)
	_, err = b.SeedIfEmpty(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, first.rows, 3)
	assert.Len(t, second.rows, 3)
}
