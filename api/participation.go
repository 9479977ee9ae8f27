package api

import (
	"context"
	"net/url"
	"strconv"
)

// Participation is one scored classroom participation entry.
type Participation struct {
	ID          int     `json:"id"`
	StudentID   int     `json:"estudiante"`
	SubjectID   int     `json:"materia"`
	Date        string  `json:"fecha"`
	Description string  `json:"descripcion"`
	Score       float64 `json:"valor"`
}

// ParticipationInput is the create/update payload for a participation entry.
type ParticipationInput struct {
	StudentID   int     `json:"estudiante"`
	SubjectID   int     `json:"materia"`
	Date        string  `json:"fecha"`
	Description string  `json:"descripcion,omitempty"`
	Score       float64 `json:"valor"`
}

// ParticipationFilter narrows participation listings. Zero values are
// omitted.
type ParticipationFilter struct {
	StudentID int
	SubjectID int
}

func (f ParticipationFilter) values() url.Values {
	v := url.Values{}
	if f.StudentID > 0 {
		v.Set("estudiante", strconv.Itoa(f.StudentID))
	}
	if f.SubjectID > 0 {
		v.Set("materia", strconv.Itoa(f.SubjectID))
	}
	return v
}

// ParticipationService manages the participation screen.
type ParticipationService struct {
	crud[Participation, ParticipationInput]
}

// Participation returns the participation service.
func (c *Client) Participation() ParticipationService {
	return ParticipationService{crud[Participation, ParticipationInput]{c: c, path: "/api/participation/"}}
}

// ListFiltered fetches one page of participation entries matching the
// filter.
func (s ParticipationService) ListFiltered(ctx context.Context, filter ParticipationFilter, params ListParams) (*Page[Participation], error) {
	return s.list(ctx, params, filter.values())
}
