package implementation

import (
	"context"

	"movie-match-be/internal/entity"
	"movie-match-be/internal/mapper"
	"movie-match-be/internal/model"
	"movie-match-be/internal/repository/contract"
	"movie-match-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MovieRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MovieMapper
}

func NewMovieRepository(db *gorm.DB) contract.MovieRepository {
	return &MovieRepositoryImpl{
		db:     db,
		mapper: mapper.NewMovieMapper(),
	}
}

func (r *MovieRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MovieRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Movie{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *MovieRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Movie, error) {
	var models []*model.Movie
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MovieRepositoryImpl) Create(ctx context.Context, movie *entity.Movie) error {
	m := r.mapper.ToModel(movie)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*movie = *r.mapper.ToEntity(m)
	return nil
}

func (r *MovieRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	return r.db.WithContext(ctx).
		Model(&model.Movie{}).
		Where("id = ?", id).
		Update("embedding", pgvector.NewVector(embedding)).Error
}

func (r *MovieRepositoryImpl) MatchMovies(ctx context.Context, embedding []float32, count int) ([]*entity.Movie, error) {
	if count <= 0 {
		count = 5
	}

	var rows []*model.MovieMatch
	err := r.db.WithContext(ctx).
		Raw("SELECT id, title, release_year, description, similarity FROM match_movies(?, ?)",
			pgvector.NewVector(embedding), count).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	movies := make([]*entity.Movie, len(rows))
	for i, row := range rows {
		movies[i] = r.mapper.MatchToEntity(row)
	}
	return movies, nil
}
