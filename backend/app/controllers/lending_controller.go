package controllers

import (
	"errors"
	"net/http"

	"jewel-lending/backend/app/dto"
	"jewel-lending/backend/app/middleware"
	"jewel-lending/backend/app/services"
)

type LendingController struct {
	Base
	Lending *services.LendingService
	Jewels  *services.JewelService
}

func NewLendingController(base Base, lending *services.LendingService, jewels *services.JewelService) *LendingController {
	return &LendingController{Base: base, Lending: lending, Jewels: jewels}
}

func (c *LendingController) RequestJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jewel_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	jewel, err := c.Jewels.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if r.Method != http.MethodPost {
		c.render(w, r, http.StatusOK, "request_jewel", "Request Jewel", jewel)
		return
	}
	form, err := dto.ParseBorrowForm(r)
	if err != nil {
		c.Sessions.Flash(r, "Please enter a valid start and end time.")
		c.render(w, r, http.StatusOK, "request_jewel", "Request Jewel", jewel)
		return
	}
	_, err = c.Lending.CreateRequest(r.Context(), services.BorrowInput{
		UserID:  middleware.FromContext(r.Context()).UserID,
		JewelID: jewel.ID,
		Start:   form.Start,
		End:     form.End,
		Notes:   form.Notes,
	})
	switch {
	case errors.Is(err, services.ErrInvalidWindow):
		c.Sessions.Flash(r, "End time must be after start time.")
	case errors.Is(err, services.ErrStartInPast):
		c.Sessions.Flash(r, "Start time must be in the future.")
	case err != nil:
		c.fail(w, r, err)
		return
	default:
		c.redirect(w, r, "/dashboard", "Borrow request submitted!")
		return
	}
	c.render(w, r, http.StatusOK, "request_jewel", "Request Jewel", jewel)
}

func (c *LendingController) Dashboard(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.Lending.ListForUser(r.Context(), middleware.FromContext(r.Context()).UserID)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "dashboard", "My Requests", reqs)
}

func (c *LendingController) AdminRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.Lending.ListAll(r.Context())
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin_requests", "Borrow Requests", reqs)
}

func (c *LendingController) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "req_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	_, err := c.Lending.Approve(r.Context(), id)
	if !c.settle(w, r, err) {
		return
	}
	c.redirect(w, r, "/admin/requests", "Request approved!")
}

func (c *LendingController) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "req_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		req, err := c.Lending.Get(r.Context(), id)
		if err != nil {
			c.fail(w, r, err)
			return
		}
		c.render(w, r, http.StatusOK, "reject_request", "Reject Request", req)
		return
	}
	form := dto.ParseRejectForm(r)
	_, err := c.Lending.Reject(r.Context(), id, form.Reason)
	if !c.settle(w, r, err) {
		return
	}
	c.redirect(w, r, "/admin/requests", "Request rejected!")
}

func (c *LendingController) MarkReturned(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "req_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	_, returned, err := c.Lending.MarkReturned(r.Context(), id)
	if !c.settle(w, r, err) {
		return
	}
	msg := ""
	if returned {
		msg = "Jewel marked as returned!"
	}
	c.redirect(w, r, "/admin/requests", msg)
}

// settle answers lifecycle errors and reports whether the caller should continue.
func (c *LendingController) settle(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return true
	}
	if msg := conflictMessage(err); msg != "" {
		c.redirect(w, r, "/admin/requests", msg)
		return false
	}
	c.fail(w, r, err)
	return false
}
