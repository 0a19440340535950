package dto

import (
	"net/http"
	"strings"
)

type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Mobile   string
	Address  string
	Role     string
}

func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Mobile:   strings.TrimSpace(r.PostFormValue("mobile")),
		Address:  strings.TrimSpace(r.PostFormValue("address")),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
}

type LoginForm struct {
	Email    string
	Password string
}

func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}
