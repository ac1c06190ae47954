// Package csvio serializes resources to CSV and parses uploaded CSV back
// against a category's field list. The line parser intentionally mirrors the
// console's historical behavior: quotes toggle an in-field state but doubled
// quotes inside a quoted value are not unescaped (known limitation, kept).
package csvio

import (
	"strconv"
	"strings"
	"time"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
)

// Resolver maps relation ids to display labels and free-form import terms
// back to ids.
type Resolver interface {
	// ProjectLabel returns the display label (code) for a project id.
	ProjectLabel(id string) string
	// UserLabel returns the display label (username) for a user id.
	UserLabel(id string) string
	// LookupProject resolves a code/name/id term to a project id.
	LookupProject(term string) (string, bool)
	// LookupUser resolves a username/fullname/email/id term to a user id.
	LookupUser(term string) (string, bool)
}

// Localized labels used in exported cells and recognized on import.
const (
	labelYes = "Có"
	labelNo  = "Không"
	labelAll = "ALL"
)

// utf8BOM keeps spreadsheet apps from misreading the encoding.
const utf8BOM = "\xEF\xBB\xBF"

// Export renders resources of one category as CSV text. The header row is
// ID, each field's display name in schema order, Creator, CreatedAt. Every
// cell is quote-wrapped with internal quotes doubled.
func Export(fields schema.FieldList, resources []models.Resource, r Resolver) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)

	header := make([]string, 0, len(fields)+3)
	header = append(header, "ID")
	for _, f := range fields {
		header = append(header, f.Name)
	}
	header = append(header, "Creator", "CreatedAt")
	writeRow(&b, header)

	for _, res := range resources {
		row := make([]string, 0, len(fields)+3)
		row = append(row, strconv.FormatUint(uint64(res.ID), 10))
		for _, f := range fields {
			row = append(row, formatValue(f, res.Data[f.Key], r))
		}
		row = append(row, res.CreatedBy, formatMillis(res.CreatedAt))
		writeRow(&b, row)
	}

	return []byte(b.String())
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// formatValue renders one stored value for export honoring the field type.
func formatValue(f schema.Field, v interface{}, r Resolver) string {
	if v == nil {
		return ""
	}

	if f.Type.IsRelation() {
		return formatRelation(f, v, r)
	}

	switch f.Type {
	case schema.TypeBoolean:
		if isTrue(v) {
			return labelYes
		}
		return labelNo
	case schema.TypeDate:
		return formatDate(stringValue(v))
	case schema.TypeNumber:
		return stringValue(v)
	default:
		return stringValue(v)
	}
}

func formatRelation(f schema.Field, v interface{}, r Resolver) string {
	ids := relationIDs(v)
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == schema.Wildcard {
			labels = append(labels, labelAll)
			continue
		}
		var label string
		if f.Type.IsProjectRelation() {
			label = r.ProjectLabel(id)
		} else {
			label = r.UserLabel(id)
		}
		if label == "" {
			label = id // unresolved reference, keep the raw id
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

func relationIDs(v interface{}) []string {
	switch items := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, stringValue(item))
		}
		return out
	case []string:
		return items
	default:
		s := stringValue(v)
		if s == "" {
			return nil
		}
		return []string{s}
	}
}

// formatDate converts a stored YYYY-MM-DD value to dd/mm/yyyy; anything that
// does not parse is passed through unchanged.
func formatDate(raw string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("02/01/2006")
}

func formatMillis(millis int64) string {
	if millis == 0 {
		return ""
	}
	return time.UnixMilli(millis).Format("02/01/2006 15:04")
}

func isTrue(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
