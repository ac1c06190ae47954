package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType tags the kind of value a category field holds.
type FieldType string

const (
	TypeText     FieldType = "text"     // short text
	TypeLongText FieldType = "longtext" // multi-line text
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date" // stored as raw YYYY-MM-DD string
	TypeBoolean  FieldType = "boolean"
	TypeProject  FieldType = "project"  // single project relation
	TypeProjects FieldType = "projects" // multi project relation
	TypeUser     FieldType = "user"     // single user relation
	TypeUsers    FieldType = "users"    // multi user relation
	TypeImage    FieldType = "image"
	TypeFile     FieldType = "file"
)

// Wildcard is the sentinel relation value meaning "applies to every entity".
// It must short-circuit matching wherever relation fields are filtered.
const Wildcard = "all"

// IsRelation reports whether the type references users or projects.
func (t FieldType) IsRelation() bool {
	switch t {
	case TypeProject, TypeProjects, TypeUser, TypeUsers:
		return true
	}
	return false
}

// IsProjectRelation reports whether the type references projects.
func (t FieldType) IsProjectRelation() bool {
	return t == TypeProject || t == TypeProjects
}

// IsUserRelation reports whether the type references users.
func (t FieldType) IsUserRelation() bool {
	return t == TypeUser || t == TypeUsers
}

// Field is one typed, keyed attribute within a category.
// Key is stable and independent of the display name.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// FieldList is an ordered field set stored as a JSON column.
type FieldList []Field

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FieldList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// ByKey returns the field with the given key.
func (l FieldList) ByKey(key string) (Field, bool) {
	for _, f := range l {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// MissingFieldError identifies the first required field without a value.
type MissingFieldError struct {
	FieldName string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.FieldName)
}

var ErrNoFields = errors.New("category must define at least one field")

// ValidateResource checks a candidate data map against a category's fields.
// Every required field must be present and non-empty; for relation fields an
// empty array counts as empty. The first required field that fails wins; no
// aggregate error list is built.
func ValidateResource(fields FieldList, data map[string]interface{}) error {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if isEmptyValue(data[f.Key]) {
			return &MissingFieldError{FieldName: f.Name}
		}
	}
	return nil
}

// ValidateFields checks that a field list is saveable: at least one field and
// unique keys. Key uniqueness across edits remains a caller responsibility;
// this only rejects lists that are already inconsistent.
func ValidateFields(fields FieldList) error {
	if len(fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return fmt.Errorf("field %q has no key", f.Name)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	default:
		return false
	}
}

// NewFieldKey derives a stable key from a display name plus a time-based
// suffix so repeated names do not collide.
func NewFieldKey(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	key := strings.Trim(b.String(), "_")
	if key == "" {
		key = "field"
	}
	return key + "_" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
