package middleware

import (
	"context"
	"net/http"

	aulasdk "github.com/Juan-JM/aulasdk"
	"github.com/Juan-JM/aulasdk/permission"
)

type userContextKey struct{}

// UserFromContext returns the user snapshot stored by [RequireAuth].
func UserFromContext(ctx context.Context) (*aulasdk.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*aulasdk.User)
	return user, ok
}

// RequireAuth redirects to loginPath unless the session is Authenticated.
// The user snapshot is placed in the request context for downstream
// handlers.
func RequireAuth(client *aulasdk.Client, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || client.Status() != aulasdk.StatusAuthenticated {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			user := client.CurrentUser()
			if user == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission answers 403 unless the current user holds the named
// permission. Compose after [RequireAuth].
func RequirePermission(client *aulasdk.Client, perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || !client.HasPermission(perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole answers 403 unless the current user holds the named role.
func RequireRole(client *aulasdk.Client, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || !client.HasRole(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAction answers 403 unless the current user may perform the given
// action on the resource, honoring the catalog's implicit role grants.
func RequireAction(client *aulasdk.Client, resource permission.Resource, action permission.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || !client.Can(resource, action) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
