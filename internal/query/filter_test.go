package query

import (
	"testing"
	"time"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
)

var testFields = schema.FieldList{
	{Name: "Name", Key: "name", Type: schema.TypeText},
	{Name: "Quantity", Key: "qty", Type: schema.TypeNumber},
	{Name: "Purchased", Key: "purchased", Type: schema.TypeDate},
	{Name: "Shared", Key: "shared", Type: schema.TypeBoolean},
	{Name: "Projects", Key: "projects", Type: schema.TypeProjects},
	{Name: "Owners", Key: "owners", Type: schema.TypeUsers},
}

func fieldByKey(t *testing.T, key string) schema.Field {
	t.Helper()
	f, ok := testFields.ByKey(key)
	if !ok {
		t.Fatalf("test field %q not defined", key)
	}
	return f
}

func TestMatchField_Text(t *testing.T) {
	f := fieldByKey(t, "name")

	tests := []struct {
		name     string
		stored   interface{}
		filter   string
		expected bool
	}{
		{"exact", "Laptop Dell", "Laptop Dell", true},
		{"substring", "Laptop Dell", "dell", true},
		{"case insensitive", "LAPTOP", "laptop", true},
		{"no match", "Laptop", "Monitor", false},
		{"empty filter matches", "anything", "", true},
		{"nil stored", nil, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchField(f, tt.stored, tt.filter); got != tt.expected {
				t.Errorf("MatchField(%v, %q) = %v, expected %v", tt.stored, tt.filter, got, tt.expected)
			}
		})
	}
}

func TestMatchField_Boolean(t *testing.T) {
	f := fieldByKey(t, "shared")

	tests := []struct {
		name     string
		stored   interface{}
		filter   string
		expected bool
	}{
		{"string true", "true", "true", true},
		{"string false", "false", "false", true},
		{"bool true", true, "true", true},
		{"bool false vs true filter", false, "true", false},
		{"nil treated as false", nil, "false", true},
		{"garbage treated as false", "yes", "false", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchField(f, tt.stored, tt.filter); got != tt.expected {
				t.Errorf("MatchField(%v, %q) = %v, expected %v", tt.stored, tt.filter, got, tt.expected)
			}
		})
	}
}

func TestMatchField_Number(t *testing.T) {
	f := fieldByKey(t, "qty")

	tests := []struct {
		name     string
		stored   interface{}
		filter   string
		expected bool
	}{
		{"float equals int text", float64(5), "5", true},
		{"string number", "5", "5.0", true},
		{"mismatch", float64(5), "6", false},
		{"non-numeric stored falls back to string equality", "n/a", "n/a", true},
		{"non-numeric stored no match", "n/a", "5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchField(f, tt.stored, tt.filter); got != tt.expected {
				t.Errorf("MatchField(%v, %q) = %v, expected %v", tt.stored, tt.filter, got, tt.expected)
			}
		})
	}
}

func TestMatchField_Date_ExactStringEquality(t *testing.T) {
	f := fieldByKey(t, "purchased")

	if !MatchField(f, "2024-03-15", "2024-03-15") {
		t.Error("identical date strings should match")
	}
	// Date filters compare raw strings: a different rendering of the same
	// day does not match.
	if MatchField(f, "2024-03-15", "15/03/2024") {
		t.Error("reformatted date must not match the raw stored value")
	}
	if MatchField(f, "2024-03-15", "2024-03") {
		t.Error("partial date must not match")
	}
}

func TestMatchField_RelationWildcard(t *testing.T) {
	f := fieldByKey(t, "projects")

	tests := []struct {
		name     string
		stored   interface{}
		filter   string
		expected bool
	}{
		{"wildcard matches any filter", []interface{}{"all"}, "42", true},
		{"wildcard among ids", []interface{}{"7", "all"}, "999", true},
		{"id member match", []interface{}{"7", "12"}, "12", true},
		{"id not a member", []interface{}{"7", "12"}, "42", false},
		{"scalar stored id", "7", "7", true},
		{"scalar wildcard", "all", "anything", true},
		{"empty array matches nothing", []interface{}{}, "7", false},
		{"nil stored", nil, "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchField(f, tt.stored, tt.filter); got != tt.expected {
				t.Errorf("MatchField(%v, %q) = %v, expected %v", tt.stored, tt.filter, got, tt.expected)
			}
		})
	}
}

func resourceAt(id uint, created time.Time, data models.JSONMap, creator string) models.Resource {
	return models.Resource{
		ID:        id,
		Data:      data,
		CreatedBy: creator,
		CreatedAt: created.UnixMilli(),
	}
}

func TestApply_EmptyCriteriaReturnsAll(t *testing.T) {
	resources := []models.Resource{
		resourceAt(1, time.Now(), models.JSONMap{"name": "A"}, "alice"),
		resourceAt(2, time.Now(), models.JSONMap{"name": "B"}, "bob"),
	}

	out := Apply(testFields, resources, Criteria{})
	if len(out) != 2 {
		t.Fatalf("expected all 2 resources, got %d", len(out))
	}
}

func TestApply_CreatorFilter(t *testing.T) {
	resources := []models.Resource{
		resourceAt(1, time.Now(), models.JSONMap{}, "alice"),
		resourceAt(2, time.Now(), models.JSONMap{}, "bob"),
		resourceAt(3, time.Now(), models.JSONMap{}, "Alice Nguyen"),
	}

	out := Apply(testFields, resources, Criteria{Creator: "alice"})
	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 3 {
		t.Errorf("order not preserved: got ids %d, %d", out[0].ID, out[1].ID)
	}
}

func TestApply_DateRangeInclusive(t *testing.T) {
	day := func(date string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02", date, time.Local)
		return t
	}

	resources := []models.Resource{
		resourceAt(1, day("2024-03-10"), models.JSONMap{}, "a"),
		resourceAt(2, day("2024-03-15").Add(23*time.Hour+59*time.Minute), models.JSONMap{}, "a"),
		resourceAt(3, day("2024-03-16"), models.JSONMap{}, "a"),
	}

	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []uint
	}{
		{"from only", Criteria{DateFrom: "2024-03-15"}, []uint{2, 3}},
		{"to only includes whole day", Criteria{DateTo: "2024-03-15"}, []uint{1, 2}},
		{"range bounds both ends", Criteria{DateFrom: "2024-03-10", DateTo: "2024-03-15"}, []uint{1, 2}},
		{"single day", Criteria{DateFrom: "2024-03-16", DateTo: "2024-03-16"}, []uint{3}},
		{"unparseable bound ignored", Criteria{DateFrom: "not-a-date"}, []uint{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(testFields, resources, tt.criteria)
			if len(out) != len(tt.wantIDs) {
				t.Fatalf("got %d resources, expected %d", len(out), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if out[i].ID != id {
					t.Errorf("out[%d].ID = %d, expected %d", i, out[i].ID, id)
				}
			}
		})
	}
}

func TestApply_FieldFiltersAreANDed(t *testing.T) {
	resources := []models.Resource{
		resourceAt(1, time.Now(), models.JSONMap{"name": "Laptop", "shared": "true"}, "a"),
		resourceAt(2, time.Now(), models.JSONMap{"name": "Laptop", "shared": "false"}, "a"),
		resourceAt(3, time.Now(), models.JSONMap{"name": "Monitor", "shared": "true"}, "a"),
	}

	out := Apply(testFields, resources, Criteria{
		Fields: map[string]string{"name": "laptop", "shared": "true"},
	})
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only resource 1, got %v", out)
	}
}

func TestApply_UnknownFilterKeyMatchesNothing(t *testing.T) {
	resources := []models.Resource{
		resourceAt(1, time.Now(), models.JSONMap{"name": "Laptop"}, "a"),
	}

	out := Apply(testFields, resources, Criteria{
		Fields: map[string]string{"removed_field": "x"},
	})
	if len(out) != 0 {
		t.Fatalf("filter on an undefined key should match nothing, got %d", len(out))
	}
}

func TestCriteria_Empty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Error("zero criteria should be empty")
	}
	if (Criteria{Creator: "x"}).Empty() {
		t.Error("criteria with creator is not empty")
	}
	if (Criteria{Fields: map[string]string{"a": "b"}}).Empty() {
		t.Error("criteria with field filters is not empty")
	}
}
