package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"jewel-lending/backend/app/middleware"
	"jewel-lending/backend/app/services"
	"jewel-lending/backend/app/views"
	"jewel-lending/backend/global"

	"github.com/gorilla/mux"
)

// Base carries what every HTML handler needs: templates and the session/flash helpers.
type Base struct {
	Views    *views.Renderer
	Sessions *middleware.Sessions
}

func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	p := views.Page{
		Title:    title,
		Identity: middleware.FromContext(r.Context()),
		Flashes:  b.Sessions.Flashes(r),
		Data:     data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf bytes.Buffer
	if err := b.Views.Render(&buf, page, p); err != nil {
		global.Logger.Error().Err(err).Str("page", page).Msg("render")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect queues msg (if any) and sends a 302 to url.
func (b *Base) redirect(w http.ResponseWriter, r *http.Request, url, msg string) {
	if msg != "" {
		b.Sessions.Flash(r, msg)
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (b *Base) notFound(w http.ResponseWriter, r *http.Request) {
	b.render(w, r, http.StatusNotFound, "not_found", "Not Found", nil)
}

func (b *Base) serverError(w http.ResponseWriter, r *http.Request, err error) {
	global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	b.render(w, r, http.StatusInternalServerError, "error", "Error", nil)
}

// fail maps service errors that are not handled by the caller.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotFound) {
		b.notFound(w, r)
		return
	}
	b.serverError(w, r, err)
}

// NotFound answers unmatched routes.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) { b.notFound(w, r) }

func muxVar(r *http.Request, name string) string { return mux.Vars(r)[name] }

func pathID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(muxVar(r, name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// conflictMessage is the flash text for lifecycle errors an admin can act on.
func conflictMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrOutOfStock):
		return "Jewel is out of stock."
	case errors.Is(err, services.ErrInvalidTransition):
		return "This request can no longer be changed."
	case errors.Is(err, services.ErrJewelInUse):
		return "Jewel has pending or approved requests and cannot be deleted."
	}
	return ""
}
