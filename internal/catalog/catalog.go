package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed movies.json
var moviesJSON []byte

// Entry is one movie of the static seed catalog.
type Entry struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Content     string `json:"content"`
}

// Movies returns the embedded catalog in file order.
func Movies() ([]Entry, error) {
	return Parse(moviesJSON)
}

func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse movie catalog: %w", err)
	}
	for i, e := range entries {
		if e.Title == "" {
			return nil, fmt.Errorf("parse movie catalog: entry %d has no title", i)
		}
	}
	return entries, nil
}
