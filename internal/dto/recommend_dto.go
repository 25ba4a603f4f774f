package dto

// SubmitAnswersRequest holds the three free-text answers. Values are trimmed
// before validation.
type SubmitAnswersRequest struct {
	Favorite string `json:"favorite" validate:"required"`
	Mood     string `json:"mood" validate:"required"`
	Tone     string `json:"tone" validate:"required"`
}

type ExplainRequest struct {
	Generation uint64 `json:"generation" validate:"required"`
}

type ExplainResponse struct {
	Generation uint64 `json:"generation"`
	Applied    bool   `json:"applied"`
	Rationale  string `json:"rationale"`
}

type ResultView struct {
	MovieId          string `json:"movie_id"`
	Title            string `json:"title"`
	Year             string `json:"year,omitempty"`
	Heading          string `json:"heading"`
	Description      string `json:"description"`
	Rationale        string `json:"rationale"`
	RationalePending bool   `json:"rationale_pending"`
	Generation       uint64 `json:"generation"`
	Position         int    `json:"position"`
	Total            int    `json:"total"`
}

type ViewResponse struct {
	Mode           string      `json:"mode"`
	Loading        bool        `json:"loading"`
	SubmitDisabled bool        `json:"submit_disabled"`
	NextDisabled   bool        `json:"next_disabled"`
	Error          string      `json:"error"`
	Notice         string      `json:"notice"`
	Result         *ResultView `json:"result,omitempty"`
}
