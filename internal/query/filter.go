// Package query implements the in-memory filter engine for resource lists.
// Lists are fetched newest-first and filtered here against the owning
// category's field definitions; the original order is preserved and all
// active criteria are ANDed.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
)

// Criteria carries the active filters for one listing.
// DateFrom/DateTo are YYYY-MM-DD and bound CreatedAt (epoch millis)
// inclusively at day granularity. Fields maps field keys to filter values.
type Criteria struct {
	Creator  string
	DateFrom string
	DateTo   string
	Fields   map[string]string
}

// Empty reports whether no filter is active.
func (c Criteria) Empty() bool {
	return c.Creator == "" && c.DateFrom == "" && c.DateTo == "" && len(c.Fields) == 0
}

// Apply returns the subset of resources matching the criteria, in the
// original order.
func Apply(fields schema.FieldList, resources []models.Resource, cr Criteria) []models.Resource {
	if cr.Empty() {
		return resources
	}

	fromMillis, hasFrom := dayStartMillis(cr.DateFrom)
	toMillis, hasTo := dayEndMillis(cr.DateTo)

	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if cr.Creator != "" && !containsFold(r.CreatedBy, cr.Creator) {
			continue
		}
		if hasFrom && r.CreatedAt < fromMillis {
			continue
		}
		if hasTo && r.CreatedAt > toMillis {
			continue
		}
		if !matchFields(fields, r.Data, cr.Fields) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchFields(fields schema.FieldList, data map[string]interface{}, filters map[string]string) bool {
	for key, filter := range filters {
		if filter == "" {
			continue
		}
		f, ok := fields.ByKey(key)
		if !ok {
			// Filter on a key the schema no longer defines: no record matches.
			return false
		}
		if !MatchField(f, data[key], filter) {
			return false
		}
	}
	return true
}

// MatchField evaluates one field filter against a stored value.
//
// Matching rules per field type:
//   - text/longtext (and file/image paths): case-insensitive substring
//   - boolean: exact match against the "true"/"false" serialization
//   - number: numeric equality, falling back to string equality when the
//     stored value does not parse
//   - date: exact string equality on the raw stored value
//   - relation: the wildcard "all" in the stored value matches any filter;
//     otherwise the filter value must be an element of the stored array (or
//     equal to a scalar stored value)
func MatchField(f schema.Field, stored interface{}, filter string) bool {
	if filter == "" {
		return true
	}

	if f.Type.IsRelation() {
		return matchRelation(stored, filter)
	}

	switch f.Type {
	case schema.TypeBoolean:
		return boolString(stored) == filter
	case schema.TypeNumber:
		sv, sok := toFloat(stored)
		fv, fok := toFloat(filter)
		if sok && fok {
			return sv == fv
		}
		return valueString(stored) == filter
	case schema.TypeDate:
		return valueString(stored) == filter
	default:
		return containsFold(valueString(stored), filter)
	}
}

func matchRelation(stored interface{}, filter string) bool {
	switch v := stored.(type) {
	case []interface{}:
		for _, item := range v {
			if valueString(item) == schema.Wildcard {
				return true
			}
		}
		for _, item := range v {
			if valueString(item) == filter {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == schema.Wildcard {
				return true
			}
		}
		for _, item := range v {
			if item == filter {
				return true
			}
		}
		return false
	case nil:
		return false
	default:
		s := valueString(v)
		return s == schema.Wildcard || s == filter
	}
}

func dayStartMillis(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

func dayEndMillis(date string) (int64, bool) {
	start, ok := dayStartMillis(date)
	if !ok {
		return 0, false
	}
	return start + 24*time.Hour.Milliseconds() - 1, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// valueString renders a stored JSON value the way filters compare it.
func valueString(v interface{}) string {
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

func boolString(v interface{}) string {
	switch b := v.(type) {
	case bool:
		return strconv.FormatBool(b)
	case string:
		if b == "true" {
			return "true"
		}
		return "false"
	default:
		return "false"
	}
}
