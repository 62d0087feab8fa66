package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"photo-ai-backend/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store is the persistence layer for models, output images and packs.
// Webhook-driven updates correlate on the fal request id, never on the row's
// own primary key: the provider does not know our ids.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateModel(ctx context.Context, model *models.Model) error {
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

func (s *Store) GetModelByIDAndUser(ctx context.Context, id, userID string) (*models.Model, error) {
	var model models.Model
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// CompleteTrainingByRequestID moves every still-submitted model matching the
// job id to completed and stores the resolved weights path. The transition is
// a single atomic update restricted to submitted rows, so redelivered
// webhooks match zero rows and terminal states are never overwritten.
func (s *Store) CompleteTrainingByRequestID(ctx context.Context, requestID, tensorPath string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Model{}).
		Where("fal_request_id = ? AND status = ?", requestID, models.StatusSubmitted).
		Updates(map[string]any{"status": models.StatusCompleted, "tensor_path": tensorPath})
	return result.RowsAffected, result.Error
}

// FailTrainingByRequestID marks still-submitted models for the job as failed.
func (s *Store) FailTrainingByRequestID(ctx context.Context, requestID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Model{}).
		Where("fal_request_id = ? AND status = ?", requestID, models.StatusSubmitted).
		Update("status", models.StatusFailed)
	return result.RowsAffected, result.Error
}

func (s *Store) CreateOutputImage(ctx context.Context, image *models.OutputImage) error {
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("failed to create output image: %w", err)
	}
	return nil
}

// CreateOutputImages persists a batch in one insert so a bulk pack request
// either records every prompt/job pairing or none of them.
func (s *Store) CreateOutputImages(ctx context.Context, images []*models.OutputImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(images).Error; err != nil {
		return fmt.Errorf("failed to create output images: %w", err)
	}
	return nil
}

// CompleteImageByRequestID is the image-webhook counterpart of
// CompleteTrainingByRequestID.
func (s *Store) CompleteImageByRequestID(ctx context.Context, requestID, imageURL string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.OutputImage{}).
		Where("fal_request_id = ? AND status = ?", requestID, models.StatusSubmitted).
		Updates(map[string]any{"status": models.StatusCompleted, "image_url": imageURL})
	return result.RowsAffected, result.Error
}

func (s *Store) FailImageByRequestID(ctx context.Context, requestID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.OutputImage{}).
		Where("fal_request_id = ? AND status = ?", requestID, models.StatusSubmitted).
		Update("status", models.StatusFailed)
	return result.RowsAffected, result.Error
}

func (s *Store) ListPacks(ctx context.Context) ([]models.Pack, error) {
	var packs []models.Pack
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&packs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	return packs, nil
}

func (s *Store) ListPackPrompts(ctx context.Context, packID string) ([]models.PackPrompt, error) {
	var prompts []models.PackPrompt
	err := s.db.WithContext(ctx).Where("pack_id = ?", packID).Order("position asc").Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pack prompts: %w", err)
	}
	return prompts, nil
}

// ListImagesByUser returns the caller's images, optionally narrowed to a set
// of ids. Limit and offset are clamped: limit defaults to DefaultPageSize,
// never exceeds MaxPageSize, and a negative offset reads from the start.
func (s *Store) ListImagesByUser(ctx context.Context, userID string, ids []string, limit, offset int) ([]models.OutputImage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	db := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(ids) > 0 {
		db = db.Where("id IN ?", ids)
	}

	var images []models.OutputImage
	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}
