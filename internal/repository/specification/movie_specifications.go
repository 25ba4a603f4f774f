package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MissingEmbedding selects movies that still need a vector.
type MissingEmbedding struct{}

func (MissingEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}

// Sample takes the first N movies in insertion order, without their vectors.
// N <= 0 means no limit.
type Sample struct {
	N int
}

func (s Sample) Apply(db *gorm.DB) *gorm.DB {
	db = db.Select("id", "title", "release_year", "description", "created_at").
		Order("created_at ASC").Order("id ASC")
	if s.N > 0 {
		db = db.Limit(s.N)
	}
	return db
}

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}
