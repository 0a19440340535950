package controllers

import (
	"errors"
	"net/http"

	"jewel-lending/backend/app/dto"
	"jewel-lending/backend/app/services"
	"jewel-lending/backend/global"
)

type AuthController struct {
	Base
	Users *services.UserService
	// AllowRoleField lets the registration form pick the account role.
	AllowRoleField bool
}

func NewAuthController(base Base, users *services.UserService, allowRoleField bool) *AuthController {
	return &AuthController{Base: base, Users: users, AllowRoleField: allowRoleField}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.render(w, r, http.StatusOK, "register", "Register", c.AllowRoleField)
		return
	}
	form := dto.ParseRegisterForm(r)
	in := services.RegisterInput{
		Name: form.Name, Email: form.Email, Password: form.Password,
		Mobile: form.Mobile, Address: form.Address,
	}
	if c.AllowRoleField {
		in.Role = form.Role
	}
	u, err := c.Users.Register(r.Context(), in)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.Sessions.Flash(r, "Email already registered.")
		c.render(w, r, http.StatusOK, "register", "Register", c.AllowRoleField)
		return
	case errors.Is(err, services.ErrInvalidInput):
		c.Sessions.Flash(r, "Please fill in the required fields.")
		c.render(w, r, http.StatusOK, "register", "Register", c.AllowRoleField)
		return
	case err != nil:
		c.serverError(w, r, err)
		return
	}
	global.Logger.Info().Uint("user", u.ID).Str("role", u.Role).Msg("user registered")
	c.redirect(w, r, "/login", "Registration successful! Please log in.")
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.render(w, r, http.StatusOK, "login", "Login", nil)
		return
	}
	form := dto.ParseLoginForm(r)
	u, err := c.Users.Authenticate(r.Context(), form.Email, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Sessions.Flash(r, "Invalid credentials.")
		c.render(w, r, http.StatusOK, "login", "Login", nil)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if err := c.Sessions.Login(w, u); err != nil {
		c.serverError(w, r, err)
		return
	}
	c.redirect(w, r, "/", "Login successful!")
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Sessions.Logout(w, r); err != nil {
		global.Logger.Warn().Err(err).Msg("revoke session")
	}
	c.redirect(w, r, "/", "Logged out successfully.")
}
