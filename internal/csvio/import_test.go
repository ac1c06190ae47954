package csvio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
)

func TestParse_HeaderMatchingCaseInsensitive(t *testing.T) {
	csv := "TÊN THIẾT BỊ,unknown column\nLaptop,ignored\n"

	rows, err := Parse(exportFields, []byte(csv), stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["ten"] != "Laptop" {
		t.Errorf("ten = %v, expected Laptop", rows[0]["ten"])
	}
	if _, ok := rows[0]["unknown column"]; ok {
		t.Error("unmatched header must be ignored entirely")
	}
}

func TestParse_BOMStripped(t *testing.T) {
	csv := utf8BOM + "Tên thiết bị\nLaptop\n"

	rows, err := Parse(exportFields, []byte(csv), stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rows[0]["ten"] != "Laptop" {
		t.Errorf("BOM should be stripped before header matching, got %v", rows[0])
	}
}

func TestParse_NoDataRows(t *testing.T) {
	if _, err := Parse(exportFields, []byte("Tên thiết bị\n"), stubResolver{}); !errors.Is(err, ErrNoData) {
		t.Errorf("header-only file should return ErrNoData, got %v", err)
	}
	if _, err := Parse(exportFields, []byte(""), stubResolver{}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty file should return ErrNoData, got %v", err)
	}
}

func TestParse_BooleanTruthyVocabulary(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"true", "true"},
		{"TRUE", "true"},
		{"Có", "true"},
		{"có", "true"},
		{"Đúng", "true"},
		{"1", "true"},
		{"false", "false"},
		{"Không", "false"},
		{"no", "false"},
		{"0", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			csv := "Dùng chung\n" + tt.raw + "\n"
			rows, err := Parse(exportFields, []byte(csv), stubResolver{})
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if rows[0]["dung_chung"] != tt.expected {
				t.Errorf("coerce(%q) = %v, expected %q", tt.raw, rows[0]["dung_chung"], tt.expected)
			}
		})
	}
}

func TestParse_EmptyBooleanCellIsFalse(t *testing.T) {
	csv := "Tên thiết bị,Dùng chung\nLaptop,\n"

	rows, err := Parse(exportFields, []byte(csv), stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rows[0]["dung_chung"] != "false" {
		t.Errorf("empty boolean cell = %v, expected false", rows[0]["dung_chung"])
	}
}

func TestParse_RelationLookups(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		cell     string
		key      string
		expected []interface{}
	}{
		{"project by code", "Dự án", "PRJ-001", "du_an", []interface{}{"1"}},
		{"project by name", "Dự án", "Website Revamp", "du_an", []interface{}{"1"}},
		{"project miss keeps raw text", "Dự án", "No Such Project", "du_an", []interface{}{"No Such Project"}},
		{"ALL becomes wildcard", "Dự án", "ALL", "du_an", []interface{}{schema.Wildcard}},
		{"lowercase all accepted", "Dự án", "all", "du_an", []interface{}{schema.Wildcard}},
		{"user by username", "Người giữ", "alice", "nguoi_giu", []interface{}{"7"}},
		{"user by email", "Người giữ", "alice@example.com", "nguoi_giu", []interface{}{"7"}},
		{"user miss keeps raw text", "Người giữ", "ghost", "nguoi_giu", []interface{}{"ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.header + "\n" + tt.cell + "\n"
			rows, err := Parse(exportFields, []byte(csv), stubResolver{})
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			got := rows[0][tt.key]
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("coerce(%q) = %#v, expected %#v", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestParse_EmptyRelationCellIsEmptyArray(t *testing.T) {
	csv := "Tên thiết bị,Dự án\nLaptop,\n"

	rows, err := Parse(exportFields, []byte(csv), stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got, ok := rows[0]["du_an"].([]interface{})
	if !ok || len(got) != 0 {
		t.Errorf("empty relation cell = %#v, expected empty array", rows[0]["du_an"])
	}
}

func TestParseLine_QuoteToggling(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "plain cells",
			line:     "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "quoted comma stays in cell",
			line:     `"a,b",c`,
			expected: []string{"a,b", "c"},
		},
		{
			name:     "empty cells",
			line:     "a,,c",
			expected: []string{"a", "", "c"},
		},
		{
			name:     "fully quoted row",
			line:     `"1","Laptop","3"`,
			expected: []string{"1", "Laptop", "3"},
		},
		{
			// Doubled quotes are not unescaped: the toggle just flips twice
			// and both quote characters vanish.
			name:     "doubled quote not unescaped",
			line:     `"say ""hi"" now"`,
			expected: []string{"say hi now"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLine(tt.line)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseLine(%s) = %#v, expected %#v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestParse_CRLFAndBlankLines(t *testing.T) {
	csv := "Tên thiết bị\r\nLaptop\r\n\r\nMonitor\r\n"

	rows, err := Parse(exportFields, []byte(csv), stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["ten"] != "Laptop" || rows[1]["ten"] != "Monitor" {
		t.Errorf("rows = %v", rows)
	}
}

// Exported booleans and relations must come back in on import: Có is truthy
// and relation labels resolve to the ids they were exported from.
func TestExportImportRoundTrip(t *testing.T) {
	resources := []models.Resource{
		{
			ID: 1,
			Data: models.JSONMap{
				"ten":        "Laptop Dell",
				"dung_chung": "true",
				"du_an":      []interface{}{"1"},
				"nguoi_giu":  []interface{}{"7"},
			},
			CreatedBy: "alice",
		},
	}

	out := Export(exportFields, resources, stubResolver{})
	rows, err := Parse(exportFields, out, stubResolver{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row["ten"] != "Laptop Dell" {
		t.Errorf("ten = %v", row["ten"])
	}
	if row["dung_chung"] != "true" {
		t.Errorf("dung_chung = %v, expected true back from Có", row["dung_chung"])
	}
	if !reflect.DeepEqual(row["du_an"], []interface{}{"1"}) {
		t.Errorf("du_an = %#v, expected project id restored from its code", row["du_an"])
	}
	if !reflect.DeepEqual(row["nguoi_giu"], []interface{}{"7"}) {
		t.Errorf("nguoi_giu = %#v, expected user id restored from username", row["nguoi_giu"])
	}
}
