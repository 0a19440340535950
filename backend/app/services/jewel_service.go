package services

import (
	"context"
	"io"
	"strings"

	"jewel-lending/backend/app/models"
	"jewel-lending/backend/app/repo"
	"jewel-lending/backend/global"
)

type JewelInput struct {
	Name         string
	Category     string
	Description  string
	PricePerHour float64
	FinePerHour  float64
	Count        int
}

func (in JewelInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || in.PricePerHour < 0 || in.FinePerHour < 0 || in.Count < 0 {
		return ErrInvalidInput
	}
	return nil
}

// ImageUpload is an optional image attached to a create or update.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

type ImageStore interface {
	Save(original string, r io.Reader) (string, error)
	Remove(name string) error
}

type JewelService struct {
	repos  *repo.Repos
	images ImageStore
}

func NewJewelService(repos *repo.Repos, images ImageStore) *JewelService {
	return &JewelService{repos: repos, images: images}
}

func (s *JewelService) ListAvailable(ctx context.Context) ([]models.Jewel, error) {
	return s.repos.Jewels.ListAvailable(ctx)
}

func (s *JewelService) ListAll(ctx context.Context) ([]models.Jewel, error) {
	return s.repos.Jewels.ListAll(ctx)
}

func (s *JewelService) Get(ctx context.Context, id uint) (*models.Jewel, error) {
	return s.repos.Jewels.FindByID(ctx, id)
}

func (s *JewelService) Create(ctx context.Context, in JewelInput, img *ImageUpload) (*models.Jewel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	j := &models.Jewel{}
	apply(j, in)
	if err := s.attachImage(j, img); err != nil {
		return nil, err
	}
	if err := s.repos.Jewels.Create(ctx, j); err != nil {
		if key := j.Image(); key != "" {
			s.dropImage(key)
		}
		return nil, err
	}
	global.Logger.Info().Uint("jewel", j.ID).Str("name", j.Name).Msg("jewel created")
	return j, nil
}

// Update overwrites the editable fields. The stored image is kept unless img carries a new one.
func (s *JewelService) Update(ctx context.Context, id uint, in JewelInput, img *ImageUpload) (*models.Jewel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	j, err := s.repos.Jewels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := j.Image()
	apply(j, in)
	if err := s.attachImage(j, img); err != nil {
		return nil, err
	}
	if err := s.repos.Jewels.Save(ctx, j); err != nil {
		if key := j.Image(); key != "" && key != oldImage {
			s.dropImage(key)
		}
		return nil, err
	}
	if oldImage != "" && oldImage != j.Image() {
		s.dropImage(oldImage)
	}
	return j, nil
}

// Delete refuses while requests are pending or approved. Settled requests keep
// their history with the jewel reference cleared.
func (s *JewelService) Delete(ctx context.Context, id uint) error {
	var image string
	err := s.repos.Transaction(ctx, func(tx *repo.Repos) error {
		j, err := tx.Jewels.FindByID(ctx, id)
		if err != nil {
			return err
		}
		active, err := tx.Requests.CountActiveForJewel(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrJewelInUse
		}
		if err := tx.Requests.DetachJewel(ctx, id); err != nil {
			return err
		}
		image = j.Image()
		return tx.Jewels.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if image != "" {
		s.dropImage(image)
	}
	global.Logger.Info().Uint("jewel", id).Msg("jewel deleted")
	return nil
}

func (s *JewelService) attachImage(j *models.Jewel, img *ImageUpload) error {
	if img == nil || img.Filename == "" || s.images == nil {
		return nil
	}
	key, err := s.images.Save(img.Filename, img.Body)
	if err != nil {
		return err
	}
	j.ImageFilename = &key
	return nil
}

func (s *JewelService) dropImage(name string) {
	if s.images == nil {
		return
	}
	if err := s.images.Remove(name); err != nil {
		global.Logger.Warn().Err(err).Str("image", name).Msg("remove image")
	}
}

func apply(j *models.Jewel, in JewelInput) {
	j.Name = strings.TrimSpace(in.Name)
	j.Category = strings.TrimSpace(in.Category)
	j.Description = in.Description
	j.PricePerHour = in.PricePerHour
	j.FinePerHour = in.FinePerHour
	j.Count = in.Count
}
