package api

import (
	"context"
	"net/url"
	"strconv"
)

// Grade is one per-period evaluation of a student in a subject, split into
// the four curricular dimensions plus the computed total.
type Grade struct {
	ID        int     `json:"id"`
	StudentID int     `json:"estudiante"`
	SubjectID int     `json:"materia"`
	Period    string  `json:"periodo"`
	Being     float64 `json:"ser"`
	Knowing   float64 `json:"saber"`
	Doing     float64 `json:"hacer"`
	Deciding  float64 `json:"decidir"`
	Total     float64 `json:"nota_total"`
}

// GradeInput is the create/update payload for a grade. The total is
// computed server-side.
type GradeInput struct {
	StudentID int     `json:"estudiante"`
	SubjectID int     `json:"materia"`
	Period    string  `json:"periodo"`
	Being     float64 `json:"ser"`
	Knowing   float64 `json:"saber"`
	Doing     float64 `json:"hacer"`
	Deciding  float64 `json:"decidir"`
}

// GradeFilter narrows grade listings. Zero values are omitted.
type GradeFilter struct {
	StudentID int
	SubjectID int
	Period    string
}

func (f GradeFilter) values() url.Values {
	v := url.Values{}
	if f.StudentID > 0 {
		v.Set("estudiante", strconv.Itoa(f.StudentID))
	}
	if f.SubjectID > 0 {
		v.Set("materia", strconv.Itoa(f.SubjectID))
	}
	if f.Period != "" {
		v.Set("periodo", f.Period)
	}
	return v
}

// GradesService manages the grades screen.
type GradesService struct {
	crud[Grade, GradeInput]
}

// Grades returns the grades service.
func (c *Client) Grades() GradesService {
	return GradesService{crud[Grade, GradeInput]{c: c, path: "/api/grades/"}}
}

// ListFiltered fetches one page of grades matching the filter.
func (s GradesService) ListFiltered(ctx context.Context, filter GradeFilter, params ListParams) (*Page[Grade], error) {
	return s.list(ctx, params, filter.values())
}
