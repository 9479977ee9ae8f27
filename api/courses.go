package api

// Course is one course (grade level + parallel + shift) record.
type Course struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	Level    string `json:"nivel"`
	Parallel string `json:"paralelo"`
	Shift    string `json:"turno"`
	Year     int    `json:"gestion"`
	Active   bool   `json:"activo"`
}

// CourseInput is the create/update payload for a course.
type CourseInput struct {
	Name     string `json:"nombre"`
	Level    string `json:"nivel"`
	Parallel string `json:"paralelo"`
	Shift    string `json:"turno"`
	Year     int    `json:"gestion"`
	Active   bool   `json:"activo"`
}

// CoursesService manages the courses screen.
type CoursesService struct {
	crud[Course, CourseInput]
}

// Courses returns the courses service.
func (c *Client) Courses() CoursesService {
	return CoursesService{crud[Course, CourseInput]{c: c, path: "/api/courses/"}}
}
