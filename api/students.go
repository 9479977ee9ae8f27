package api

import (
	"context"
	"net/url"
	"strconv"
)

// Student is one enrolled student record.
type Student struct {
	ID        int    `json:"id"`
	CI        string `json:"ci"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	BirthDate string `json:"fecha_nacimiento"`
	Gender    string `json:"genero"`
	CourseID  int    `json:"curso"`
	TutorID   int    `json:"tutor"`
	Active    bool   `json:"activo"`
}

// StudentInput is the create/update payload for a student.
type StudentInput struct {
	CI        string `json:"ci"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	BirthDate string `json:"fecha_nacimiento"`
	Gender    string `json:"genero"`
	CourseID  int    `json:"curso"`
	TutorID   int    `json:"tutor,omitempty"`
	Active    bool   `json:"activo"`
}

// StudentsService manages the students screen.
type StudentsService struct {
	crud[Student, StudentInput]
}

// Students returns the students service.
func (c *Client) Students() StudentsService {
	return StudentsService{crud[Student, StudentInput]{c: c, path: "/api/students/"}}
}

// ListByCourse fetches one page of the students enrolled in a course.
func (s StudentsService) ListByCourse(ctx context.Context, courseID int, params ListParams) (*Page[Student], error) {
	extra := url.Values{}
	extra.Set("curso", strconv.Itoa(courseID))
	return s.list(ctx, params, extra)
}
