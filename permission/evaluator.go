package permission

// Known role names assigned by the backend's group administration.
const (
	// RoleAdministrador implicitly satisfies every permission check.
	RoleAdministrador = "Administrador"
	// RoleDocente is the teaching staff role; it receives implicit
	// view/add/change grants on grading-related resources, never delete.
	RoleDocente = "Docente"
	// RoleTutor is the guardian role.
	RoleTutor = "Tutor"
)

// Principal is the authorization snapshot of the current user: role names
// and explicit permission strings. A nil Principal denies everything.
type Principal struct {
	Roles       []string
	Permissions []string
}

// HasRole reports whether the principal holds the named role. An absent
// principal holds no roles.
func HasRole(p *Principal, role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether the principal may perform the named
// permission. An absent principal is denied; the administrator role is
// granted unconditionally; everyone else needs explicit membership.
func HasPermission(p *Principal, perm string) bool {
	if p == nil {
		return false
	}
	if HasRole(p, RoleAdministrador) {
		return true
	}
	for _, held := range p.Permissions {
		if held == perm {
			return true
		}
	}
	return false
}
