package services

import (
	"errors"

	"jewel-lending/backend/app/repo"
)

var (
	ErrNotFound           = repo.ErrNotFound
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidWindow      = errors.New("end time must be after start time")
	ErrStartInPast        = errors.New("start time must be in the future")
	ErrOutOfStock         = errors.New("jewel is out of stock")
	ErrInvalidTransition  = errors.New("request status does not allow this action")
	ErrJewelInUse         = errors.New("jewel has pending or approved requests")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
