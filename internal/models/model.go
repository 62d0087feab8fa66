package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus tracks the lifecycle of an asynchronous fal.ai job. Rows are
// created as StatusSubmitted and move to a terminal state only when the
// matching webhook arrives.
type JobStatus string

const (
	StatusSubmitted JobStatus = "submitted"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Model is a custom LoRA model trained from a user-supplied archive of
// portrait photos. TensorPath stays empty until the training webhook
// resolves it.
type Model struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"not null" json:"type"`
	Age          int       `gorm:"not null" json:"age"`
	Ethnicity    string    `gorm:"not null" json:"ethinicity"`
	EyeColor     string    `gorm:"not null" json:"eyeColor"`
	Bald         bool      `gorm:"not null" json:"bald"`
	UserID       string    `gorm:"index;not null" json:"userId"`
	ZipURL       string    `gorm:"not null" json:"zipUrl"`
	FalRequestID string    `gorm:"index;not null" json:"falRequestId"`
	Status       JobStatus `gorm:"not null;default:'submitted'" json:"trainingStatus"`
	TensorPath   string    `json:"tensorPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
