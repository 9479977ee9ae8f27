package session

// Status is the lifecycle state of the console session.
type Status uint8

const (
	// StatusUninitialized is the state before the startup rehydration has run.
	StatusUninitialized Status = iota
	// StatusAuthenticating is the state while a login or rehydration is in flight.
	StatusAuthenticating
	// StatusAuthenticated means both tokens and the user profile are present.
	StatusAuthenticated
	// StatusUnauthenticated means the session is cleared and a login is required.
	StatusUnauthenticated
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// TokenPair is the access/refresh credential pair issued by the backend.
// The access token is a short-lived bearer credential; the refresh token is
// exchanged for new access tokens. Both are opaque strings at this layer.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether neither token is present.
func (p TokenPair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// User is the authenticated principal: identity plus the authorization
// attributes consumed by the permission evaluator. Replaced wholesale on
// profile update, never mutated field by field.
type User struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Groups      []string `json:"groups"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
}

// FullName returns "FirstName LastName", falling back to the username when
// the profile carries no name.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// profile updates.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Groups = append([]string(nil), u.Groups...)
	out.Permissions = append([]string(nil), u.Permissions...)
	return &out
}
