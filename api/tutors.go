package api

// Tutor is one guardian record.
type Tutor struct {
	ID           int    `json:"id"`
	CI           string `json:"ci"`
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	Phone        string `json:"telefono"`
	Address      string `json:"direccion"`
	Relationship string `json:"parentesco"`
	Active       bool   `json:"activo"`
}

// TutorInput is the create/update payload for a tutor.
type TutorInput struct {
	CI           string `json:"ci"`
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	Phone        string `json:"telefono,omitempty"`
	Address      string `json:"direccion,omitempty"`
	Relationship string `json:"parentesco"`
	Active       bool   `json:"activo"`
}

// TutorsService manages the tutors screen.
type TutorsService struct {
	crud[Tutor, TutorInput]
}

// Tutors returns the tutors service.
func (c *Client) Tutors() TutorsService {
	return TutorsService{crud[Tutor, TutorInput]{c: c, path: "/api/tutors/"}}
}
