package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/dto"
	"movie-match-be/internal/entity"
)

//go:embed templates/index.html
var templates embed.FS

// Renderer projects session state into what the widget shows.
type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse widget template: %w", err)
	}
	return &Renderer{page: page}, nil
}

// Render returns the view for s. Exactly one panel is active: the result is
// only set in result display mode.
func (r *Renderer) Render(s *entity.Session) *dto.ViewResponse {
	v := &dto.ViewResponse{
		Mode:           string(s.Mode),
		Loading:        s.Loading,
		SubmitDisabled: s.Loading,
		NextDisabled:   s.Loading || len(s.Matches) == 0 || s.Mode != entity.ViewModeResultDisplay,
		Error:          s.ErrorMessage,
		Notice:         s.Notice,
	}

	if s.Mode != entity.ViewModeResultDisplay {
		return v
	}

	m := s.Current()
	if m == nil {
		// no record to show; fall back to the question panel
		v.Mode = string(entity.ViewModeQuestionEntry)
		return v
	}

	rationale := s.Rationale
	if s.RationalePending {
		rationale = constant.RationalePlaceholder
	}

	v.Result = &dto.ResultView{
		MovieId:          m.Id.String(),
		Title:            m.Title,
		Year:             m.ReleaseYear,
		Heading:          Heading(m),
		Description:      m.Description,
		Rationale:        rationale,
		RationalePending: s.RationalePending,
		Generation:       s.Generation,
		Position:         s.CurrentIndex + 1,
		Total:            len(s.Matches),
	}
	return v
}

// Heading is the title with a " (year)" suffix when the year is known.
func Heading(m *entity.Movie) string {
	if m.ReleaseYear == "" {
		return m.Title
	}
	return fmt.Sprintf("%s (%s)", m.Title, m.ReleaseYear)
}

// Page writes the full widget page with v as its initial state.
func (r *Renderer) Page(w io.Writer, v *dto.ViewResponse) error {
	return r.page.Execute(w, v)
}
