package repo

import (
	"context"

	"jewel-lending/backend/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BorrowRequestRepository struct{ db *gorm.DB }

func NewBorrowRequestRepository(db *gorm.DB) *BorrowRequestRepository {
	return &BorrowRequestRepository{db: db}
}

func (r *BorrowRequestRepository) Create(ctx context.Context, req *models.BorrowRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

func (r *BorrowRequestRepository) FindByID(ctx context.Context, id uint) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	if err := r.db.WithContext(ctx).Preload("Jewel").Preload("User").First(&req, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

func (r *BorrowRequestRepository) ListByUser(ctx context.Context, userID uint) ([]models.BorrowRequest, error) {
	var reqs []models.BorrowRequest
	err := r.db.WithContext(ctx).Preload("Jewel").
		Where("user_id = ?", userID).
		Order("id").
		Find(&reqs).Error
	return reqs, err
}

func (r *BorrowRequestRepository) ListAll(ctx context.Context) ([]models.BorrowRequest, error) {
	var reqs []models.BorrowRequest
	err := r.db.WithContext(ctx).Preload("Jewel").Preload("User").Order("id").Find(&reqs).Error
	return reqs, err
}

// Transition moves a request from one status to another and applies extra column updates.
// It reports false when the request was no longer in the from status.
func (r *BorrowRequestRepository) Transition(ctx context.Context, id uint, from, to models.RequestStatus, updates map[string]any) (bool, error) {
	cols := map[string]any{"status": to}
	for k, v := range updates {
		cols[k] = v
	}
	res := r.db.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(cols)
	return res.RowsAffected == 1, res.Error
}

func (r *BorrowRequestRepository) CountActiveForJewel(ctx context.Context, jewelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("jewel_id = ? AND status IN ?", jewelID, []models.RequestStatus{models.StatusPending, models.StatusApproved}).
		Count(&count).Error
	return count, err
}

// DetachJewel nulls jewel_id on the remaining (settled) requests of a jewel.
func (r *BorrowRequestRepository) DetachJewel(ctx context.Context, jewelID uint) error {
	return r.db.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("jewel_id = ?", jewelID).
		UpdateColumn("jewel_id", gorm.Expr("NULL")).Error
}
