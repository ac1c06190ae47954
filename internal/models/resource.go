package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a string-keyed JSON object stored in a text column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// Resource is a single record conforming to its category's field list.
// Data keys are field keys; relation values are arrays of id strings, with
// the sentinel "all" meaning every entity of that relation type.
// CreatedBy holds the creator's username, not id. CreatedAt is epoch millis
// (Project.CreatedAt is a timestamp; the asymmetry is intentional).
type Resource struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	CategoryID uint    `gorm:"index;not null" json:"category_id"`
	Data       JSONMap `gorm:"type:text" json:"data"`
	CreatedBy  string  `gorm:"size:100;index" json:"created_by"`
	CreatedAt  int64   `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt  int64   `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

func (Resource) TableName() string { return "resources" }
