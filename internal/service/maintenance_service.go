package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-match-be/internal/catalog"
	"movie-match-be/internal/dto"
	"movie-match-be/internal/entity"
	"movie-match-be/internal/mapper"
	"movie-match-be/internal/pkg/logger"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ProgressFunc is called after each row of a batch has been processed.
type ProgressFunc func(done, total int)

// IMaintenanceService holds the operator routines that fill the movies
// collection. Neither guards against concurrent runs.
type IMaintenanceService interface {
	SeedIfEmpty(ctx context.Context, progress ProgressFunc) (*dto.MaintenanceReport, error)
	BackfillMissingEmbeddings(ctx context.Context, progress ProgressFunc) (*dto.MaintenanceReport, error)
}

// JobPubSub is the subset of a watermill pub/sub used for embedding jobs.
// Publish must block until the subscriber acknowledged the message
// (gochannel with BlockPublishUntilSubscriberAck).
type JobPubSub interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type maintenanceService struct {
	pubSub    JobPubSub
	topicName string
	movies    contract.MovieRepository
	embedder  IEmbeddingClient
	catalog   func() ([]catalog.Entry, error)
	mapper    *mapper.MovieMapper
	logger    logger.ILogger
}

func NewMaintenanceService(
	pubSub JobPubSub,
	topicName string,
	movies contract.MovieRepository,
	embedder IEmbeddingClient,
	entries func() ([]catalog.Entry, error),
	log logger.ILogger,
) IMaintenanceService {
	if entries == nil {
		entries = catalog.Movies
	}
	return &maintenanceService{
		pubSub:    pubSub,
		topicName: topicName,
		movies:    movies,
		embedder:  embedder,
		catalog:   entries,
		mapper:    mapper.NewMovieMapper(),
		logger:    log,
	}
}

func (s *maintenanceService) SeedIfEmpty(ctx context.Context, progress ProgressFunc) (*dto.MaintenanceReport, error) {
	count, err := s.movies.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}
	if count > 0 {
		s.logger.Info("Maintenance", "Movies already present, skipping seed", map[string]interface{}{"count": count})
		return &dto.MaintenanceReport{Operation: "seed", Skipped: true}, nil
	}

	entries, err := s.catalog()
	if err != nil {
		return nil, err
	}

	jobs := make([]dto.EmbedMovieJob, len(entries))
	for i, e := range entries {
		m := s.mapper.FromCatalog(e)
		jobs[i] = dto.EmbedMovieJob{
			Action:      dto.EmbedJobInsert,
			Title:       m.Title,
			ReleaseYear: m.ReleaseYear,
			Description: m.Description,
		}
	}

	s.logger.Info("Maintenance", "Seeding movies", map[string]interface{}{"total": len(jobs)})
	return s.runBatch(ctx, "seed", jobs, progress)
}

func (s *maintenanceService) BackfillMissingEmbeddings(ctx context.Context, progress ProgressFunc) (*dto.MaintenanceReport, error) {
	rows, err := s.movies.FindAll(ctx, specification.MissingEmbedding{})
	if err != nil {
		return nil, fmt.Errorf("select movies without embedding: %w", err)
	}

	jobs := make([]dto.EmbedMovieJob, len(rows))
	for i, r := range rows {
		jobs[i] = dto.EmbedMovieJob{
			Action:      dto.EmbedJobUpdate,
			MovieId:     r.Id,
			Title:       r.Title,
			ReleaseYear: r.ReleaseYear,
			Description: r.Description,
		}
	}

	s.logger.Info("Maintenance", "Backfilling missing embeddings", map[string]interface{}{"total": len(jobs)})
	return s.runBatch(ctx, "backfill", jobs, progress)
}

// runBatch publishes one message per job on a topic private to this run and
// consumes them in order. Failed rows are logged and acked, never redelivered.
func (s *maintenanceService) runBatch(ctx context.Context, operation string, jobs []dto.EmbedMovieJob, progress ProgressFunc) (*dto.MaintenanceReport, error) {
	report := &dto.MaintenanceReport{Operation: operation, Total: len(jobs)}
	if len(jobs) == 0 {
		return report, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	topic := fmt.Sprintf("%s.%s.%s", s.topicName, operation, watermill.NewShortUUID())
	messages, err := s.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			if err := s.processMessage(ctx, msg); err != nil {
				report.Failed++
			} else {
				report.Succeeded++
			}
			msg.Ack()
		}
	}()

	for i, job := range jobs {
		payload, err := json.Marshal(job)
		if err == nil {
			err = s.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
		}
		if err != nil {
			// the consumer never saw this row
			s.logger.Error("Maintenance", "Failed to publish embed job", map[string]interface{}{"title": job.Title, "error": err})
			report.Failed++
		}
		if progress != nil {
			progress(i+1, len(jobs))
		}
	}

	cancel()
	<-done

	s.logger.Info("Maintenance", operation+" complete", map[string]interface{}{
		"total": report.Total, "succeeded": report.Succeeded, "failed": report.Failed,
	})
	return report, nil
}

var errEmptyEmbedding = errors.New("embedding provider returned no vector")

func (s *maintenanceService) processMessage(ctx context.Context, msg *message.Message) error {
	var job dto.EmbedMovieJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.logger.Error("Maintenance", "Invalid embed job", map[string]interface{}{"message_id": msg.UUID, "error": err})
		return err
	}

	movie := &entity.Movie{
		Id:          job.MovieId,
		Title:       job.Title,
		ReleaseYear: job.ReleaseYear,
		Description: job.Description,
	}

	vec, err := s.embedder.Embed(ctx, movie.EmbeddingDocument())
	if err == nil && len(vec) == 0 {
		err = errEmptyEmbedding
	}
	if err != nil {
		s.logger.Error("Maintenance", "Embedding failed", map[string]interface{}{"title": job.Title, "error": err})
		return err
	}

	switch job.Action {
	case dto.EmbedJobInsert:
		movie.Embedding = vec
		err = s.movies.Create(ctx, movie)
	case dto.EmbedJobUpdate:
		err = s.movies.UpdateEmbedding(ctx, job.MovieId, vec)
	default:
		err = fmt.Errorf("unknown embed job action %q", job.Action)
	}
	if err != nil {
		s.logger.Error("Maintenance", "Write failed", map[string]interface{}{
			"action": job.Action, "movie_id": job.MovieId.String(), "title": job.Title, "error": err,
		})
		return err
	}
	return nil
}
