package entity

type ViewMode string

const (
	ViewModeQuestionEntry ViewMode = "question_entry"
	ViewModeResultDisplay ViewMode = "result_display"
)

// Session is the interactive state of one browser session.
// CurrentIndex stays in [0, len(Matches)) whenever Matches is non-empty.
type Session struct {
	Id           string   `json:"id"`
	Mode         ViewMode `json:"mode"`
	Loading      bool     `json:"loading"`
	UserText     string   `json:"user_text"`
	Matches      []*Movie `json:"matches"`
	CurrentIndex int      `json:"current_index"`

	// Generation changes every time the displayed record changes. Rationale
	// results are only applied for the generation they were requested for.
	Generation       uint64 `json:"generation"`
	Rationale        string `json:"rationale"`
	RationalePending bool   `json:"rationale_pending"`

	ErrorMessage string `json:"error_message"`
	Notice       string `json:"notice"`
}

func NewSession(id string) *Session {
	return &Session{
		Id:   id,
		Mode: ViewModeQuestionEntry,
	}
}

// Current returns the displayed record, or nil when there are no matches.
func (s *Session) Current() *Movie {
	if len(s.Matches) == 0 {
		return nil
	}
	return s.Matches[s.CurrentIndex]
}

// ShowMatches replaces the match list wholesale and displays the first record.
func (s *Session) ShowMatches(userText string, matches []*Movie) {
	s.UserText = userText
	s.Matches = matches
	s.CurrentIndex = 0
	s.Mode = ViewModeResultDisplay
	s.resetRationale()
}

// Advance moves to the next record cyclically.
func (s *Session) Advance() bool {
	if len(s.Matches) == 0 {
		return false
	}
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Matches)
	s.resetRationale()
	return true
}

// ApplyRationale stores text for the given generation. It reports false when
// the displayed record has changed since the request was issued.
func (s *Session) ApplyRationale(generation uint64, text string) bool {
	if generation != s.Generation || len(s.Matches) == 0 {
		return false
	}
	s.Rationale = text
	s.RationalePending = false
	return true
}

func (s *Session) resetRationale() {
	s.Generation++
	s.Rationale = ""
	s.RationalePending = true
}
