package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutputImage is one generated portrait. ImageURL stays empty until the
// image webhook resolves it.
type OutputImage struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Prompt       string    `gorm:"not null" json:"prompt"`
	UserID       string    `gorm:"index;not null" json:"userId"`
	ModelID      string    `gorm:"index;not null" json:"modelId"`
	FalRequestID string    `gorm:"index;not null" json:"falRequestId"`
	Status       JobStatus `gorm:"not null;default:'submitted'" json:"status"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (i *OutputImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
