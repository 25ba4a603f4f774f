package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Movie struct {
	Id          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string           `gorm:"type:text;not null"`
	ReleaseYear *string          `gorm:"type:text"`
	Description *string          `gorm:"type:text"`
	Embedding   *pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieMatch is one row returned by the match_movies function.
type MovieMatch struct {
	Id          uuid.UUID
	Title       string
	ReleaseYear *string
	Description *string
	Similarity  float64
}
