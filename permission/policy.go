package permission

// Action is one of the four CRUD verbs in the backend's permission naming
// convention.
type Action uint8

const (
	ActionView Action = iota
	ActionAdd
	ActionChange
	ActionDelete
)

func (a Action) verb() string {
	switch a {
	case ActionView:
		return "view"
	case ActionAdd:
		return "add"
	case ActionChange:
		return "change"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Resource names one screen's backing entity and the roles that receive an
// implicit grant on it. GrantedRoles cover view/add/change only: delete is
// reserved to the administrator role on every resource, uniformly.
type Resource struct {
	App          string
	Entity       string
	GrantedRoles []string
}

// Permission returns the backend permission string for the given action,
// e.g. Students.Permission(ActionView) == "students.view_estudiante".
func (r Resource) Permission(a Action) string {
	return r.App + "." + a.verb() + "_" + r.Entity
}

// The console's resource catalog. Grading, attendance, and participation
// grant the teaching role implicit view/add/change access so graders never
// need per-user permission rows.
var (
	Students      = Resource{App: "students", Entity: "estudiante"}
	Teachers      = Resource{App: "teachers", Entity: "docente"}
	Tutors        = Resource{App: "tutors", Entity: "tutor"}
	Courses       = Resource{App: "courses", Entity: "curso"}
	Subjects      = Resource{App: "subjects", Entity: "materia"}
	Grades        = Resource{App: "grades", Entity: "nota", GrantedRoles: []string{RoleDocente}}
	Attendance    = Resource{App: "attendance", Entity: "asistencia", GrantedRoles: []string{RoleDocente}}
	Participation = Resource{App: "participation", Entity: "participacion", GrantedRoles: []string{RoleDocente}}
	Groups        = Resource{App: "auth", Entity: "group"}
)

// Can decides whether the principal may perform action a on resource r.
// Absent principals are denied. The administrator role passes every check
// through [HasPermission]. Implicit role grants never extend to delete.
func Can(p *Principal, r Resource, a Action) bool {
	if p == nil {
		return false
	}
	if a != ActionDelete {
		for _, role := range r.GrantedRoles {
			if HasRole(p, role) {
				return true
			}
		}
	}
	return HasPermission(p, r.Permission(a))
}

// CanView reports view access on r.
func CanView(p *Principal, r Resource) bool { return Can(p, r, ActionView) }

// CanAdd reports create access on r.
func CanAdd(p *Principal, r Resource) bool { return Can(p, r, ActionAdd) }

// CanChange reports edit access on r.
func CanChange(p *Principal, r Resource) bool { return Can(p, r, ActionChange) }

// CanDelete reports delete access on r. Only explicit delete permission or
// the administrator role grants it.
func CanDelete(p *Principal, r Resource) bool { return Can(p, r, ActionDelete) }

// CanManage reports whether the principal may both create and edit on r,
// the gate used by the console's combined edit screens.
func CanManage(p *Principal, r Resource) bool {
	return Can(p, r, ActionAdd) && Can(p, r, ActionChange)
}
