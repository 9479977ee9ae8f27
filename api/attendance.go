package api

import (
	"context"
	"net/url"
	"strconv"
)

// Attendance states understood by the backend.
const (
	AttendancePresent = "presente"
	AttendanceAbsent  = "ausente"
	AttendanceLate    = "tarde"
	AttendanceExcused = "licencia"
)

// Attendance is one per-day attendance mark for a student in a subject.
type Attendance struct {
	ID        int    `json:"id"`
	StudentID int    `json:"estudiante"`
	SubjectID int    `json:"materia"`
	Date      string `json:"fecha"`
	State     string `json:"estado"`
}

// AttendanceInput is the create/update payload for an attendance mark.
type AttendanceInput struct {
	StudentID int    `json:"estudiante"`
	SubjectID int    `json:"materia"`
	Date      string `json:"fecha"`
	State     string `json:"estado"`
}

// AttendanceFilter narrows attendance listings. Zero values are omitted.
type AttendanceFilter struct {
	StudentID int
	SubjectID int
	Date      string
}

func (f AttendanceFilter) values() url.Values {
	v := url.Values{}
	if f.StudentID > 0 {
		v.Set("estudiante", strconv.Itoa(f.StudentID))
	}
	if f.SubjectID > 0 {
		v.Set("materia", strconv.Itoa(f.SubjectID))
	}
	if f.Date != "" {
		v.Set("fecha", f.Date)
	}
	return v
}

// AttendanceService manages the attendance screen.
type AttendanceService struct {
	crud[Attendance, AttendanceInput]
}

// Attendance returns the attendance service.
func (c *Client) Attendance() AttendanceService {
	return AttendanceService{crud[Attendance, AttendanceInput]{c: c, path: "/api/attendance/"}}
}

// ListFiltered fetches one page of attendance marks matching the filter.
func (s AttendanceService) ListFiltered(ctx context.Context, filter AttendanceFilter, params ListParams) (*Page[Attendance], error) {
	return s.list(ctx, params, filter.values())
}
