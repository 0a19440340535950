package middleware

import (
	"net/http"

	"jewel-lending/backend/app/session"
)

// Access is the minimum caller level a route requires.
type Access int

const (
	Public Access = iota
	Member
	Admin
)

func (a Access) String() string {
	switch a {
	case Member:
		return "member"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

func (a Access) Allows(id *session.Identity) bool {
	switch a {
	case Public:
		return true
	case Member:
		return id != nil
	case Admin:
		return id.IsAdmin()
	}
	return false
}

type Auth struct{ Sessions *Sessions }

// Require lets the request through when the caller meets level.
// Denied admin routes go back to the index, denied member routes to the login page.
func (a *Auth) Require(level Access, next http.Handler) http.Handler {
	if level == Public {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if level.Allows(FromContext(r.Context())) {
			next.ServeHTTP(w, r)
			return
		}
		if level == Admin {
			a.Sessions.Flash(r, "Access denied.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		a.Sessions.Flash(r, "Please log in.")
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}
