package dto

import "github.com/google/uuid"

const (
	EmbedJobInsert = "insert"
	EmbedJobUpdate = "update"
)

// EmbedMovieJob is the payload of one seed or backfill row.
type EmbedMovieJob struct {
	Action      string    `json:"action"`
	MovieId     uuid.UUID `json:"movie_id,omitempty"`
	Title       string    `json:"title"`
	ReleaseYear string    `json:"release_year"`
	Description string    `json:"description"`
}

type MaintenanceReport struct {
	Operation string `json:"operation"`
	Skipped   bool   `json:"skipped"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

type GetLogsQuery struct {
	Level  string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
