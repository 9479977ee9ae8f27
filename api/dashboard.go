package api

import (
	"context"
	"net/http"
)

// CourseAverage is one course's grade average in the dashboard summary.
type CourseAverage struct {
	CourseID int     `json:"curso"`
	Course   string  `json:"curso_nombre"`
	Average  float64 `json:"promedio"`
}

// MonthlyRate is one month's attendance rate in the dashboard series.
type MonthlyRate struct {
	Month string  `json:"mes"`
	Rate  float64 `json:"tasa"`
}

// Stats is the dashboard's aggregate snapshot.
type Stats struct {
	TotalStudents     int             `json:"total_estudiantes"`
	TotalTeachers     int             `json:"total_docentes"`
	TotalCourses      int             `json:"total_cursos"`
	TotalSubjects     int             `json:"total_materias"`
	OverallAverage    float64         `json:"promedio_general"`
	AttendanceRate    float64         `json:"tasa_asistencia"`
	AveragesByCourse  []CourseAverage `json:"promedio_por_curso"`
	AttendanceByMonth []MonthlyRate   `json:"asistencia_por_mes"`
}

// DashboardService serves the aggregate statistics screen.
type DashboardService struct {
	c *Client
}

// Dashboard returns the dashboard service.
func (c *Client) Dashboard() DashboardService {
	return DashboardService{c: c}
}

// Stats fetches the aggregate snapshot.
func (s DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := s.c.do(ctx, http.MethodGet, "/api/dashboard/stats/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
