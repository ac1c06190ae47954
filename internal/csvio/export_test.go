package csvio

import (
	"strings"
	"testing"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
)

// stubResolver maps a small fixed set of projects and users for tests.
type stubResolver struct{}

func (stubResolver) ProjectLabel(id string) string {
	switch id {
	case "1":
		return "PRJ-001"
	case "2":
		return "PRJ-002"
	}
	return ""
}

func (stubResolver) UserLabel(id string) string {
	switch id {
	case "7":
		return "alice"
	case "8":
		return "bob"
	}
	return ""
}

func (stubResolver) LookupProject(term string) (string, bool) {
	switch term {
	case "PRJ-001", "Website Revamp", "1":
		return "1", true
	case "PRJ-002", "2":
		return "2", true
	}
	return "", false
}

func (stubResolver) LookupUser(term string) (string, bool) {
	switch term {
	case "alice", "Alice Nguyen", "alice@example.com", "7":
		return "7", true
	case "bob", "8":
		return "8", true
	}
	return "", false
}

var exportFields = schema.FieldList{
	{Name: "Tên thiết bị", Key: "ten", Type: schema.TypeText},
	{Name: "Số lượng", Key: "so_luong", Type: schema.TypeNumber},
	{Name: "Ngày mua", Key: "ngay_mua", Type: schema.TypeDate},
	{Name: "Dùng chung", Key: "dung_chung", Type: schema.TypeBoolean},
	{Name: "Dự án", Key: "du_an", Type: schema.TypeProjects},
	{Name: "Người giữ", Key: "nguoi_giu", Type: schema.TypeUsers},
}

func exportLines(t *testing.T, resources []models.Resource) []string {
	t.Helper()
	data := Export(exportFields, resources, stubResolver{})
	text := string(data)
	if !strings.HasPrefix(text, utf8BOM) {
		t.Fatal("export must start with a UTF-8 BOM")
	}
	text = strings.TrimPrefix(text, utf8BOM)
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func TestExport_Header(t *testing.T) {
	lines := exportLines(t, nil)
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}

	want := `"ID","Tên thiết bị","Số lượng","Ngày mua","Dùng chung","Dự án","Người giữ","Creator","CreatedAt"`
	if lines[0] != want {
		t.Errorf("header = %s, expected %s", lines[0], want)
	}
}

func TestExport_Row(t *testing.T) {
	resources := []models.Resource{
		{
			ID: 12,
			Data: models.JSONMap{
				"ten":       "Laptop Dell",
				"so_luong":  float64(3),
				"ngay_mua":  "2024-03-15",
				"dung_chung": "true",
				"du_an":     []interface{}{"1", "2"},
				"nguoi_giu": []interface{}{"7"},
			},
			CreatedBy: "alice",
		},
	}

	lines := exportLines(t, resources)
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	row := lines[1]
	checks := []string{
		`"12"`,
		`"Laptop Dell"`,
		`"3"`,
		`"15/03/2024"`,
		`"Có"`,
		`"PRJ-001, PRJ-002"`,
		`"alice"`,
	}
	for _, c := range checks {
		if !strings.Contains(row, c) {
			t.Errorf("row missing %s: %s", c, row)
		}
	}
}

func TestExport_BooleanLabels(t *testing.T) {
	resources := []models.Resource{
		{ID: 1, Data: models.JSONMap{"dung_chung": "true"}},
		{ID: 2, Data: models.JSONMap{"dung_chung": "false"}},
		{ID: 3, Data: models.JSONMap{"dung_chung": true}},
		{ID: 4, Data: models.JSONMap{}},
	}

	lines := exportLines(t, resources)

	if !strings.Contains(lines[1], `"Có"`) {
		t.Errorf("string true should render Có: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"Không"`) {
		t.Errorf("string false should render Không: %s", lines[2])
	}
	if !strings.Contains(lines[3], `"Có"`) {
		t.Errorf("bool true should render Có: %s", lines[3])
	}
	if strings.Contains(lines[4], `"Có"`) || strings.Contains(lines[4], `"Không"`) {
		t.Errorf("absent boolean should render empty: %s", lines[4])
	}
}

func TestExport_WildcardRendersALL(t *testing.T) {
	resources := []models.Resource{
		{ID: 1, Data: models.JSONMap{"du_an": []interface{}{schema.Wildcard}}},
	}

	lines := exportLines(t, resources)
	if !strings.Contains(lines[1], `"ALL"`) {
		t.Errorf("wildcard relation should export as ALL: %s", lines[1])
	}
}

func TestExport_UnresolvedRelationKeepsRawID(t *testing.T) {
	resources := []models.Resource{
		{ID: 1, Data: models.JSONMap{"du_an": []interface{}{"999"}}},
	}

	lines := exportLines(t, resources)
	if !strings.Contains(lines[1], `"999"`) {
		t.Errorf("unresolved relation id should pass through: %s", lines[1])
	}
}

func TestExport_QuotesDoubledInCells(t *testing.T) {
	resources := []models.Resource{
		{ID: 1, Data: models.JSONMap{"ten": `Màn hình 24" Dell`}},
	}

	lines := exportLines(t, resources)
	if !strings.Contains(lines[1], `"Màn hình 24"" Dell"`) {
		t.Errorf("internal quote should be doubled: %s", lines[1])
	}
}

func TestExport_UnparseableDatePassesThrough(t *testing.T) {
	resources := []models.Resource{
		{ID: 1, Data: models.JSONMap{"ngay_mua": "sometime in 2024"}},
	}

	lines := exportLines(t, resources)
	if !strings.Contains(lines[1], `"sometime in 2024"`) {
		t.Errorf("unparseable date should pass through unchanged: %s", lines[1])
	}
}
