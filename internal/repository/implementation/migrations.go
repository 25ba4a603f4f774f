package implementation

import (
	"context"
	"fmt"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/model"

	"gorm.io/gorm"
)

var matchMoviesFunction = fmt.Sprintf(`CREATE OR REPLACE FUNCTION match_movies(query_embedding vector(%d), match_count int)
RETURNS TABLE (id uuid, title text, release_year text, description text, similarity float)
LANGUAGE sql STABLE AS $$
	SELECT m.id, m.title, m.release_year, m.description, 1 - (m.embedding <=> query_embedding) AS similarity
	FROM movies m
	WHERE m.embedding IS NOT NULL
	ORDER BY m.embedding <=> query_embedding
	LIMIT match_count;
$$;`, constant.EmbeddingDimensions)

// Migrate creates the movies table and the match_movies function. Safe to rerun.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	for _, sql := range []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	} {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("setup extensions: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.Movie{}); err != nil {
		return fmt.Errorf("auto migrate movies: %w", err)
	}

	if err := db.Exec(matchMoviesFunction).Error; err != nil {
		return fmt.Errorf("create match_movies: %w", err)
	}
	return nil
}
