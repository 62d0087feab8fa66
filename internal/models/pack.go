package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pack is a curated, read-only bundle of prompts used to bulk-generate
// images against a trained model.
type Pack struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Pack) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PackPrompt is one prompt inside a pack. Position fixes the order prompts
// are fanned out in during bulk generation.
type PackPrompt struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	PackID   string `gorm:"index;not null" json:"packId"`
	Prompt   string `gorm:"not null" json:"prompt"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (p *PackPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
