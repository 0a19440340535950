package ui

import (
	"context"

	"jewel-lending/backend/app/models"
	"jewel-lending/backend/app/services"
)

// Backend is the slice of the lending domain the console drives.
type Backend interface {
	ListRequests(ctx context.Context) ([]models.BorrowRequest, error)
	ListJewels(ctx context.Context) ([]models.Jewel, error)
	Approve(ctx context.Context, id uint) error
	Reject(ctx context.Context, id uint, reason string) error
	// MarkReturned reports false when the request was not approved.
	MarkReturned(ctx context.Context, id uint) (bool, error)
}

// ServiceBackend calls the lending and catalog services directly.
type ServiceBackend struct {
	Lending *services.LendingService
	Jewels  *services.JewelService
}

func (b ServiceBackend) ListRequests(ctx context.Context) ([]models.BorrowRequest, error) {
	return b.Lending.ListAll(ctx)
}

func (b ServiceBackend) ListJewels(ctx context.Context) ([]models.Jewel, error) {
	return b.Jewels.ListAll(ctx)
}

func (b ServiceBackend) Approve(ctx context.Context, id uint) error {
	_, err := b.Lending.Approve(ctx, id)
	return err
}

func (b ServiceBackend) Reject(ctx context.Context, id uint, reason string) error {
	_, err := b.Lending.Reject(ctx, id, reason)
	return err
}

func (b ServiceBackend) MarkReturned(ctx context.Context, id uint) (bool, error) {
	_, returned, err := b.Lending.MarkReturned(ctx, id)
	return returned, err
}
