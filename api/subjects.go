package api

import (
	"context"
	"net/url"
	"strconv"
)

// Subject is one taught subject, bound to a course and a teacher.
type Subject struct {
	ID        int    `json:"id"`
	Name      string `json:"nombre"`
	CourseID  int    `json:"curso"`
	TeacherID int    `json:"docente"`
	Active    bool   `json:"activo"`
}

// SubjectInput is the create/update payload for a subject.
type SubjectInput struct {
	Name      string `json:"nombre"`
	CourseID  int    `json:"curso"`
	TeacherID int    `json:"docente"`
	Active    bool   `json:"activo"`
}

// SubjectsService manages the subjects screen.
type SubjectsService struct {
	crud[Subject, SubjectInput]
}

// Subjects returns the subjects service.
func (c *Client) Subjects() SubjectsService {
	return SubjectsService{crud[Subject, SubjectInput]{c: c, path: "/api/subjects/"}}
}

// ListByTeacher fetches one page of the subjects assigned to a teacher.
func (s SubjectsService) ListByTeacher(ctx context.Context, teacherID int, params ListParams) (*Page[Subject], error) {
	extra := url.Values{}
	extra.Set("docente", strconv.Itoa(teacherID))
	return s.list(ctx, params, extra)
}
