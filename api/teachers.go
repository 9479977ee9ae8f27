package api

// Teacher is one teaching staff record.
type Teacher struct {
	ID        int    `json:"id"`
	CI        string `json:"ci"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	Specialty string `json:"especialidad"`
	Active    bool   `json:"activo"`
}

// TeacherInput is the create/update payload for a teacher.
type TeacherInput struct {
	CI        string `json:"ci"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"telefono,omitempty"`
	Specialty string `json:"especialidad,omitempty"`
	Active    bool   `json:"activo"`
}

// TeachersService manages the teachers screen.
type TeachersService struct {
	crud[Teacher, TeacherInput]
}

// Teachers returns the teachers service.
func (c *Client) Teachers() TeachersService {
	return TeachersService{crud[Teacher, TeacherInput]{c: c, path: "/api/teachers/"}}
}
