package services

import (
	"context"
	"errors"
	"time"

	"jewel-lending/backend/app/models"
	"jewel-lending/backend/app/repo"
	"jewel-lending/backend/global"
)

type BorrowInput struct {
	UserID  uint
	JewelID uint
	Start   time.Time
	End     time.Time
	Notes   string
}

// LendingService drives a borrow request through
// pending -> approved|rejected, approved -> returned.
type LendingService struct {
	repos *repo.Repos
	now   func() time.Time
}

func NewLendingService(repos *repo.Repos, now func() time.Time) *LendingService {
	if now == nil {
		now = time.Now
	}
	return &LendingService{repos: repos, now: now}
}

func (s *LendingService) CreateRequest(ctx context.Context, in BorrowInput) (*models.BorrowRequest, error) {
	jewel, err := s.repos.Jewels.FindByID(ctx, in.JewelID)
	if err != nil {
		return nil, err
	}
	if !in.End.After(in.Start) {
		return nil, ErrInvalidWindow
	}
	if !in.Start.After(s.now()) {
		return nil, ErrStartInPast
	}
	jewelID := jewel.ID
	req := &models.BorrowRequest{
		UserID:           in.UserID,
		JewelID:          &jewelID,
		StartTime:        in.Start,
		EndTime:          in.End,
		Status:           models.StatusPending,
		CalculatedAmount: RentalCost(in.Start, in.End, jewel.PricePerHour),
		Notes:            in.Notes,
	}
	if err := s.repos.Requests.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Jewel = jewel
	global.Logger.Info().Uint("request", req.ID).Uint("user", in.UserID).Uint("jewel", jewelID).
		Float64("amount", req.CalculatedAmount).Msg("borrow request created")
	return req, nil
}

// Approve takes one unit off the shelf. It fails with ErrOutOfStock when none is left.
func (s *LendingService) Approve(ctx context.Context, id uint) (*models.BorrowRequest, error) {
	err := s.repos.Transaction(ctx, func(tx *repo.Repos) error {
		req, err := tx.Requests.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != models.StatusPending {
			return ErrInvalidTransition
		}
		if req.JewelID == nil {
			return ErrNotFound
		}
		took, err := tx.Jewels.TakeUnit(ctx, *req.JewelID)
		if err != nil {
			return err
		}
		if !took {
			return ErrOutOfStock
		}
		moved, err := tx.Requests.Transition(ctx, id, models.StatusPending, models.StatusApproved, nil)
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	global.Logger.Info().Uint("request", id).Msg("borrow request approved")
	return s.repos.Requests.FindByID(ctx, id)
}

// Reject overwrites the request notes with reason.
func (s *LendingService) Reject(ctx context.Context, id uint, reason string) (*models.BorrowRequest, error) {
	req, err := s.repos.Requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}
	moved, err := s.repos.Requests.Transition(ctx, id, models.StatusPending, models.StatusRejected, map[string]any{"notes": reason})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	global.Logger.Info().Uint("request", id).Msg("borrow request rejected")
	return s.repos.Requests.FindByID(ctx, id)
}

// MarkReturned puts the unit back and charges the overdue fine as of now.
// Requests that are not approved are left untouched and reported with returned=false.
func (s *LendingService) MarkReturned(ctx context.Context, id uint) (req *models.BorrowRequest, returned bool, err error) {
	err = s.repos.Transaction(ctx, func(tx *repo.Repos) error {
		cur, err := tx.Requests.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Status != models.StatusApproved {
			return nil
		}
		fine := 0.0
		if cur.Jewel != nil {
			fine = OverdueFine(cur.EndTime, s.now(), cur.Jewel.FinePerHour)
		}
		moved, err := tx.Requests.Transition(ctx, id, models.StatusApproved, models.StatusReturned, map[string]any{"fine_amount": fine})
		if err != nil || !moved {
			return err
		}
		if cur.JewelID != nil {
			if err := tx.Jewels.ReturnUnit(ctx, *cur.JewelID); err != nil {
				return err
			}
		}
		returned = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	req, err = s.repos.Requests.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if returned {
		global.Logger.Info().Uint("request", id).Float64("fine", req.FineAmount).Msg("borrow request returned")
	}
	return req, returned, nil
}

func (s *LendingService) Get(ctx context.Context, id uint) (*models.BorrowRequest, error) {
	return s.repos.Requests.FindByID(ctx, id)
}

func (s *LendingService) ListForUser(ctx context.Context, userID uint) ([]models.BorrowRequest, error) {
	return s.repos.Requests.ListByUser(ctx, userID)
}

func (s *LendingService) ListAll(ctx context.Context) ([]models.BorrowRequest, error) {
	return s.repos.Requests.ListAll(ctx)
}

// IsConflict reports lifecycle errors that are shown to the admin instead of failing the request.
func IsConflict(err error) bool {
	return errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrJewelInUse)
}
