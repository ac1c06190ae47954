package csvio

import (
	"errors"
	"strings"

	"github.com/minhph/resourcehub/internal/schema"
)

// truthy is the vocabulary accepted as a boolean "yes" on import,
// matched case-insensitively.
var truthy = map[string]struct{}{
	"true": {},
	"có":   {},
	"đúng": {},
	"1":    {},
}

var ErrNoData = errors.New("csv contains no data rows")

// Parse reads CSV text against a category's field list and returns one data
// map per row, coerced by field type.
//
// Line 1 is the header; each header cell is matched case-insensitively
// against field display names. Unmatched headers are ignored, and required
// fields without a matching column are left blank. Validation is not run here.
func Parse(fields schema.FieldList, data []byte, r Resolver) ([]map[string]interface{}, error) {
	text := strings.TrimPrefix(string(data), utf8BOM)
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	headers := parseLine(lines[0])
	columns := make([]*schema.Field, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		for j := range fields {
			if strings.EqualFold(fields[j].Name, name) {
				columns[i] = &fields[j]
				break
			}
		}
	}

	rows := make([]map[string]interface{}, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := parseLine(line)
		row := make(map[string]interface{})
		for i, cell := range cells {
			if i >= len(columns) || columns[i] == nil {
				continue
			}
			row[columns[i].Key] = coerce(*columns[i], cell, r)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// coerce converts one raw cell into the stored representation for the field
// type. Relation lookups are best-effort: a miss keeps the raw text as a
// single-element array rather than dropping the reference.
func coerce(f schema.Field, raw string, r Resolver) interface{} {
	value := strings.TrimSpace(stripQuotes(raw))

	if f.Type.IsRelation() {
		if value == "" {
			return []interface{}{}
		}
		if strings.EqualFold(value, labelAll) || value == schema.Wildcard {
			return []interface{}{schema.Wildcard}
		}
		var id string
		var ok bool
		if f.Type.IsProjectRelation() {
			id, ok = r.LookupProject(value)
		} else {
			id, ok = r.LookupUser(value)
		}
		if ok {
			return []interface{}{id}
		}
		return []interface{}{value}
	}

	if f.Type == schema.TypeBoolean {
		if _, ok := truthy[strings.ToLower(value)]; ok {
			return "true"
		}
		return "false"
	}

	return value
}

// parseLine splits one CSV line on commas, treating a double quote as a
// toggle for "inside quoted field" state. Doubled quotes inside a quoted
// field are NOT unescaped; that limitation is part of the documented format.
func parseLine(line string) []string {
	var cells []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	cells = append(cells, current.String())
	return cells
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
