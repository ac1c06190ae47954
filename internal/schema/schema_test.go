package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestFieldType_IsRelation(t *testing.T) {
	tests := []struct {
		fieldType FieldType
		expected  bool
	}{
		{TypeText, false},
		{TypeLongText, false},
		{TypeNumber, false},
		{TypeDate, false},
		{TypeBoolean, false},
		{TypeProject, true},
		{TypeProjects, true},
		{TypeUser, true},
		{TypeUsers, true},
		{TypeImage, false},
		{TypeFile, false},
	}

	for _, tt := range tests {
		if got := tt.fieldType.IsRelation(); got != tt.expected {
			t.Errorf("IsRelation(%s) = %v, expected %v", tt.fieldType, got, tt.expected)
		}
	}
}

func TestFieldType_RelationKinds(t *testing.T) {
	if !TypeProject.IsProjectRelation() || !TypeProjects.IsProjectRelation() {
		t.Error("project types should be project relations")
	}
	if TypeUser.IsProjectRelation() {
		t.Error("user type should not be a project relation")
	}
	if !TypeUser.IsUserRelation() || !TypeUsers.IsUserRelation() {
		t.Error("user types should be user relations")
	}
	if TypeProjects.IsUserRelation() {
		t.Error("projects type should not be a user relation")
	}
}

func TestValidateResource(t *testing.T) {
	fields := FieldList{
		{Name: "Name", Key: "name", Type: TypeText, Required: true},
		{Name: "Quantity", Key: "qty", Type: TypeNumber, Required: true},
		{Name: "Notes", Key: "notes", Type: TypeLongText, Required: false},
		{Name: "Owners", Key: "owners", Type: TypeUsers, Required: true},
	}

	tests := []struct {
		name    string
		data    map[string]interface{}
		missing string
	}{
		{
			name: "all required present",
			data: map[string]interface{}{
				"name":   "Laptop",
				"qty":    float64(3),
				"owners": []interface{}{"7"},
			},
		},
		{
			name: "optional field absent is fine",
			data: map[string]interface{}{
				"name":   "Monitor",
				"qty":    "2",
				"owners": []interface{}{Wildcard},
			},
		},
		{
			name:    "missing key",
			data:    map[string]interface{}{"qty": float64(1), "owners": []interface{}{"1"}},
			missing: "Name",
		},
		{
			name: "blank string counts as missing",
			data: map[string]interface{}{
				"name":   "   ",
				"qty":    float64(1),
				"owners": []interface{}{"1"},
			},
			missing: "Name",
		},
		{
			name: "empty relation array counts as missing",
			data: map[string]interface{}{
				"name":   "Desk",
				"qty":    float64(1),
				"owners": []interface{}{},
			},
			missing: "Owners",
		},
		{
			name:    "first missing field wins",
			data:    map[string]interface{}{"notes": "only optional"},
			missing: "Name",
		},
		{
			name: "zero number is not missing",
			data: map[string]interface{}{
				"name":   "Cable",
				"qty":    float64(0),
				"owners": []interface{}{"1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResource(fields, tt.data)
			if tt.missing == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.FieldName != tt.missing {
				t.Errorf("missing field = %q, expected %q", missing.FieldName, tt.missing)
			}
		})
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  FieldList
		wantErr bool
	}{
		{
			name:    "empty list rejected",
			fields:  FieldList{},
			wantErr: true,
		},
		{
			name: "valid list",
			fields: FieldList{
				{Name: "A", Key: "a", Type: TypeText},
				{Name: "B", Key: "b", Type: TypeNumber},
			},
		},
		{
			name: "duplicate key rejected",
			fields: FieldList{
				{Name: "A", Key: "a", Type: TypeText},
				{Name: "Also A", Key: "a", Type: TypeText},
			},
			wantErr: true,
		},
		{
			name: "empty key rejected",
			fields: FieldList{
				{Name: "A", Key: "", Type: TypeText},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.fields)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFields() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := ValidateFields(nil); !errors.Is(err, ErrNoFields) {
		t.Errorf("nil list should return ErrNoFields, got %v", err)
	}
}

func TestFieldList_ByKey(t *testing.T) {
	fields := FieldList{
		{Name: "Name", Key: "name", Type: TypeText},
		{Name: "Projects", Key: "projects", Type: TypeProjects},
	}

	f, ok := fields.ByKey("projects")
	if !ok {
		t.Fatal("expected to find key projects")
	}
	if f.Type != TypeProjects {
		t.Errorf("Type = %s, expected projects", f.Type)
	}

	if _, ok := fields.ByKey("missing"); ok {
		t.Error("should not find missing key")
	}
}

func TestFieldList_ValueAndScan(t *testing.T) {
	fields := FieldList{
		{ID: "1", Name: "Tên thiết bị", Key: "ten_thiet_bi", Type: TypeText, Required: true},
		{ID: "2", Name: "Dự án", Key: "du_an", Type: TypeProjects},
	}

	value, err := fields.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var restored FieldList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(restored) != 2 {
		t.Fatalf("restored %d fields, expected 2", len(restored))
	}
	if restored[0].Name != "Tên thiết bị" || restored[0].Key != "ten_thiet_bi" {
		t.Errorf("first field corrupted: %+v", restored[0])
	}
	if restored[1].Type != TypeProjects {
		t.Errorf("second field type = %s, expected projects", restored[1].Type)
	}
}

func TestFieldList_ScanNil(t *testing.T) {
	var fields FieldList
	if err := fields.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if fields != nil {
		t.Error("scanning nil should leave the list nil")
	}
}

func TestFieldList_ValueNil(t *testing.T) {
	var fields FieldList
	value, err := fields.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if value != "[]" {
		t.Errorf("nil list should serialize to [], got %v", value)
	}
}

func TestNewFieldKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Serial Number", "serial_number_"},
		{"Dùng chung", "dng_chung_"},
		{"   ", "field_"},
		{"123", "123_"},
	}

	for _, tt := range tests {
		key := NewFieldKey(tt.name)
		if !strings.HasPrefix(key, tt.prefix) {
			t.Errorf("NewFieldKey(%q) = %q, expected prefix %q", tt.name, key, tt.prefix)
		}
		if len(key) <= len(tt.prefix) {
			t.Errorf("NewFieldKey(%q) = %q, expected a suffix after the prefix", tt.name, key)
		}
	}
}
