package router

import (
	"net/http"

	"jewel-lending/backend/app/controllers"
	"jewel-lending/backend/app/middleware"

	"github.com/gorilla/mux"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Catalog *controllers.CatalogController
	Lending *controllers.LendingController
	Health  *controllers.HealthController
}

type route struct {
	path    string
	methods []string
	access  middleware.Access
	handler http.HandlerFunc
}

var (
	get     = []string{http.MethodGet, http.MethodHead}
	post    = []string{http.MethodPost}
	getPost = []string{http.MethodGet, http.MethodHead, http.MethodPost}
)

func routes(c Controllers) []route {
	return []route{
		{"/", get, middleware.Public, c.Catalog.Index},
		{"/register", getPost, middleware.Public, c.Auth.Register},
		{"/login", getPost, middleware.Public, c.Auth.Login},
		{"/logout", get, middleware.Public, c.Auth.Logout},
		{"/uploaded_file/{filename}", get, middleware.Public, c.Catalog.UploadedFile},
		{"/healthz", get, middleware.Public, c.Health.Healthz},

		{"/request/{jewel_id:[0-9]+}", getPost, middleware.Member, c.Lending.RequestJewel},
		{"/dashboard", get, middleware.Member, c.Lending.Dashboard},

		{"/add_jewel", getPost, middleware.Admin, c.Catalog.AddJewel},
		{"/edit_jewel/{jewel_id:[0-9]+}", getPost, middleware.Admin, c.Catalog.EditJewel},
		{"/delete_jewel/{jewel_id:[0-9]+}", post, middleware.Admin, c.Catalog.DeleteJewel},
		{"/admin/manage", get, middleware.Admin, c.Catalog.AdminManage},
		{"/admin/requests", get, middleware.Admin, c.Lending.AdminRequests},
		{"/admin/approve/{req_id:[0-9]+}", post, middleware.Admin, c.Lending.Approve},
		{"/admin/reject/{req_id:[0-9]+}", getPost, middleware.Admin, c.Lending.Reject},
		{"/admin/mark_returned/{req_id:[0-9]+}", post, middleware.Admin, c.Lending.MarkReturned},
	}
}

// NewRouter registers every route behind its access level. The session middleware
// runs first so both access checks and handlers see the caller's identity.
func NewRouter(c Controllers, sessions *middleware.Sessions) http.Handler {
	auth := &middleware.Auth{Sessions: sessions}
	r := mux.NewRouter()
	for _, rt := range routes(c) {
		h := auth.Require(rt.access, rt.handler)
		r.Handle(rt.path, middleware.WithRoute(rt.path, h)).Methods(rt.methods...)
	}
	r.NotFoundHandler = middleware.WithRoute("not_found", http.HandlerFunc(c.Auth.NotFound))
	return middleware.Logging(sessions.Handler(r))
}
