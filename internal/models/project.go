package models

import (
	"time"

	"gorm.io/gorm"
)

// Project status values
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectPaused    = "paused"
)

// Project is a grouping entity that relation fields can reference.
// Code is a unique human-readable identifier (uppercase alnum + hyphen).
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;default:active" json:"status"` // active, completed, paused
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ValidProjectStatus reports whether status is a known project status.
func ValidProjectStatus(status string) bool {
	return status == ProjectActive || status == ProjectCompleted || status == ProjectPaused
}
