package models

import (
	"time"

	"github.com/minhph/resourcehub/internal/schema"
	"gorm.io/gorm"
)

// Category access levels. Restricted categories are invisible to plain users.
const (
	AccessPublic     = "public"
	AccessRestricted = "restricted"
)

// Category is an admin-defined record type: a named, ordered list of typed
// field definitions that drives validation, filtering and CSV handling.
type Category struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Fields      schema.FieldList `gorm:"type:text" json:"fields"`
	AccessLevel string           `gorm:"size:20;default:public" json:"access_level"` // public, restricted
	Icon        string           `gorm:"size:500" json:"icon"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Category) TableName() string { return "categories" }
