package repo

import (
	"context"

	"jewel-lending/backend/app/models"

	"gorm.io/gorm"
)

type JewelRepository struct{ db *gorm.DB }

func NewJewelRepository(db *gorm.DB) *JewelRepository { return &JewelRepository{db: db} }

func (r *JewelRepository) Create(ctx context.Context, j *models.Jewel) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JewelRepository) FindByID(ctx context.Context, id uint) (*models.Jewel, error) {
	var j models.Jewel
	if err := r.db.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

// ListAvailable returns jewels with at least one unit on the shelf.
func (r *JewelRepository) ListAvailable(ctx context.Context) ([]models.Jewel, error) {
	var jewels []models.Jewel
	err := r.db.WithContext(ctx).Where("count > ?", 0).Order("id").Find(&jewels).Error
	return jewels, err
}

func (r *JewelRepository) ListAll(ctx context.Context) ([]models.Jewel, error) {
	var jewels []models.Jewel
	err := r.db.WithContext(ctx).Order("id").Find(&jewels).Error
	return jewels, err
}

// Save writes every column, including zero values.
func (r *JewelRepository) Save(ctx context.Context, j *models.Jewel) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *JewelRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Jewel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TakeUnit decrements count by one when at least one unit is left.
// It reports false when the shelf was empty.
func (r *JewelRepository) TakeUnit(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Jewel{}).
		Where("id = ? AND count > 0", id).
		UpdateColumn("count", gorm.Expr("count - 1"))
	return res.RowsAffected == 1, res.Error
}

func (r *JewelRepository) ReturnUnit(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Jewel{}).
		Where("id = ?", id).
		UpdateColumn("count", gorm.Expr("count + 1")).Error
}
