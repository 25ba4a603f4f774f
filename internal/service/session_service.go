package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/dto"
	"movie-match-be/internal/entity"
	"movie-match-be/internal/pkg/logger"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/view"

	"github.com/go-playground/validator/v10"
)

// ISessionService drives one widget session: question entry, loading,
// result display and cycling through matches.
type ISessionService interface {
	State(ctx context.Context, sessionID string) (*dto.ViewResponse, error)
	Submit(ctx context.Context, sessionID string, req *dto.SubmitAnswersRequest) (*dto.ViewResponse, error)
	Next(ctx context.Context, sessionID string) (*dto.ViewResponse, error)
	Again(ctx context.Context, sessionID string) (*dto.ViewResponse, error)
	Explain(ctx context.Context, sessionID string, generation uint64) (*dto.ExplainResponse, error)
}

const lockStripes = 64

type sessionService struct {
	sessions  contract.SessionRepository
	embedder  IEmbeddingClient
	completer ICompletionClient
	matcher   IMatchService
	renderer  *view.Renderer
	validate  *validator.Validate
	logger    logger.ILogger

	// State changes for one session are serialized; upstream calls run
	// outside the lock.
	locks [lockStripes]sync.Mutex
}

func NewSessionService(
	sessions contract.SessionRepository,
	embedder IEmbeddingClient,
	completer ICompletionClient,
	matcher IMatchService,
	renderer *view.Renderer,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessions:  sessions,
		embedder:  embedder,
		completer: completer,
		matcher:   matcher,
		renderer:  renderer,
		validate:  validator.New(),
		logger:    log,
	}
}

// UserText formats the answers into the semantic query.
func UserText(req *dto.SubmitAnswersRequest) string {
	return fmt.Sprintf("Favorite: %s. Mood: %s. Tone: %s.", req.Favorite, req.Mood, req.Tone)
}

func (s *sessionService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *sessionService) load(ctx context.Context, sessionID string) (*entity.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = entity.NewSession(sessionID)
	}
	return sess, nil
}

// update runs fn on the stored session under its lock and saves the result.
func (s *sessionService) update(ctx context.Context, sessionID string, fn func(*entity.Session) error) (*entity.Session, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) State(ctx context.Context, sessionID string) (*dto.ViewResponse, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(sess), nil
}

func (s *sessionService) Submit(ctx context.Context, sessionID string, req *dto.SubmitAnswersRequest) (*dto.ViewResponse, error) {
	answers := &dto.SubmitAnswersRequest{
		Favorite: strings.TrimSpace(req.Favorite),
		Mood:     strings.TrimSpace(req.Mood),
		Tone:     strings.TrimSpace(req.Tone),
	}
	invalid := s.validate.Struct(answers) != nil

	sess, err := s.update(ctx, sessionID, func(sess *entity.Session) error {
		if sess.Loading {
			return ErrSubmissionInFlight
		}
		sess.Notice = ""
		if invalid {
			sess.ErrorMessage = constant.MessageMissingAnswers
			return nil
		}
		sess.ErrorMessage = ""
		sess.Loading = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if invalid {
		return s.renderer.Render(sess), nil
	}

	settled := false
	defer func() {
		if !settled {
			s.abandonSubmission(ctx, sessionID)
		}
	}()

	userText := UserText(answers)
	matches, notice, failure := s.search(ctx, userText)

	sess, err = s.update(ctx, sessionID, func(sess *entity.Session) error {
		sess.Loading = false
		if failure != "" {
			sess.Mode = entity.ViewModeQuestionEntry
			sess.ErrorMessage = failure
			return nil
		}
		sess.ShowMatches(userText, matches)
		sess.Notice = notice
		return nil
	})
	if err != nil {
		return nil, err
	}
	settled = true
	return s.renderer.Render(sess), nil
}

// abandonSubmission returns a session stuck in Loading to the questions after
// a failed save or a panic. Best effort: a second failure is only logged.
func (s *sessionService) abandonSubmission(ctx context.Context, sessionID string) {
	_, err := s.update(context.WithoutCancel(ctx), sessionID, func(sess *entity.Session) error {
		if !sess.Loading {
			return nil
		}
		sess.Loading = false
		sess.Mode = entity.ViewModeQuestionEntry
		sess.ErrorMessage = constant.MessageSubmissionFailed
		return nil
	})
	if err != nil {
		s.logger.Error("SessionService", "Failed to clear loading state", map[string]interface{}{
			"session_id": sessionID, "error": err,
		})
	}
}

// search returns the matches to show, an advisory notice when they came from
// the fallback, or a user-facing failure message.
func (s *sessionService) search(ctx context.Context, userText string) ([]*entity.Movie, string, string) {
	vec, err := s.embedder.Embed(ctx, userText)
	if err != nil {
		s.logger.Error("SessionService", "Embedding failed", map[string]interface{}{"error": err})
		return nil, "", constant.MessageEmbeddingFailed
	}
	if len(vec) == 0 {
		return nil, "", constant.MessageEmptyEmbedding
	}

	if matches := s.matcher.MatchMovies(ctx, vec); len(matches) > 0 {
		return matches, "", ""
	}

	fallback := s.matcher.SampleMovies(ctx, constant.SampleCount)
	if len(fallback) == 0 {
		return nil, "", constant.MessageNoMatches
	}
	s.logger.Info("SessionService", "No ranked matches, using fallback sample", map[string]interface{}{"count": len(fallback)})
	return fallback, constant.MessageFallbackMatches, ""
}

func (s *sessionService) Next(ctx context.Context, sessionID string) (*dto.ViewResponse, error) {
	sess, err := s.update(ctx, sessionID, func(sess *entity.Session) error {
		if sess.Loading || sess.Mode != entity.ViewModeResultDisplay || !sess.Advance() {
			return ErrNextUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(sess), nil
}

// Again returns to the questions. Matches are kept until the next submission.
func (s *sessionService) Again(ctx context.Context, sessionID string) (*dto.ViewResponse, error) {
	sess, err := s.update(ctx, sessionID, func(sess *entity.Session) error {
		sess.Mode = entity.ViewModeQuestionEntry
		sess.ErrorMessage = ""
		sess.Notice = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(sess), nil
}

// Explain fills the rationale for the record shown at generation. A result
// that arrives after the user moved on is discarded.
func (s *sessionService) Explain(ctx context.Context, sessionID string, generation uint64) (*dto.ExplainResponse, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		mu.Unlock()
		return nil, err
	}
	movie := sess.Current()
	if movie == nil || sess.Generation != generation {
		mu.Unlock()
		return &dto.ExplainResponse{Generation: generation}, nil
	}
	if !sess.RationalePending {
		rationale := sess.Rationale
		mu.Unlock()
		return &dto.ExplainResponse{Generation: generation, Applied: true, Rationale: rationale}, nil
	}
	userText := sess.UserText
	target := *movie
	mu.Unlock()

	text, err := s.completer.Explain(ctx, userText, &target)
	if err != nil {
		s.logger.Warn("SessionService", "Explanation failed", map[string]interface{}{
			"movie_id": target.Id.String(), "error": err,
		})
		text = ""
	}

	applied := false
	_, err = s.update(ctx, sessionID, func(sess *entity.Session) error {
		applied = sess.ApplyRationale(generation, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		s.logger.Debug("SessionService", "Discarding stale explanation", map[string]interface{}{"generation": generation})
		return &dto.ExplainResponse{Generation: generation}, nil
	}
	return &dto.ExplainResponse{Generation: generation, Applied: true, Rationale: text}, nil
}
