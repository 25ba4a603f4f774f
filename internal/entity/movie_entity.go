package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Movie is the canonical movie record. ReleaseYear is always text; catalog
// years are converted on ingestion.
type Movie struct {
	Id          uuid.UUID
	Title       string
	ReleaseYear string
	Description string
	Embedding   []float32
	Similarity  float64 // only set on ranked matches
}

// EmbeddingDocument is the text embedded for a movie.
func (m *Movie) EmbeddingDocument() string {
	return fmt.Sprintf("%s (%s): %s", m.Title, m.ReleaseYear, m.Description)
}

func (m *Movie) HasEmbedding() bool {
	return len(m.Embedding) > 0
}
