package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists") ||
		strings.Contains(errStr, "already contains")
}

// recordID builds the SurrealDB record id for an integer key
func recordID(table string, id int64) models.RecordID {
	return models.NewRecordID(table, id)
}

// extractRecordInt extracts the integer key of a record id such as planet:5
func extractRecordInt(id interface{}) (int64, bool) {
	switch v := id.(type) {
	case models.RecordID:
		return toInt64(v.ID)
	case *models.RecordID:
		if v != nil {
			return toInt64(v.ID)
		}
	case string:
		// "planet:5"
		if idx := strings.LastIndex(v, ":"); idx >= 0 {
			v = v[idx+1:]
		}
		n, err := strconv.ParseInt(strings.Trim(v, "`⟨⟩"), 10, 64)
		return n, err == nil
	case map[string]interface{}:
		// Handle {"tb": "table", "id": 5} format
		if inner, ok := v["id"]; ok {
			return toInt64(inner)
		}
		if inner, ok := v["ID"]; ok {
			return toInt64(inner)
		}
	}
	return 0, false
}

// toInt64 converts the numeric types the SurrealDB client may decode into int64
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), n == math.Trunc(n)
	case float32:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// asRecord normalizes a decoded SurrealDB object to a string-keyed map
func asRecord(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// statementRecords returns the records produced by one statement of a query.
// A negative index counts from the last statement.
func statementRecords(results []interface{}, idx int) []map[string]interface{} {
	if idx < 0 {
		idx = len(results) + idx
	}
	if idx < 0 || idx >= len(results) {
		return nil
	}

	resp, ok := results[idx].(map[string]interface{})
	if !ok {
		return nil
	}

	var items []interface{}
	switch r := resp["result"].(type) {
	case []interface{}:
		items = r
	case nil:
		return nil
	default:
		items = []interface{}{r}
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if rec, ok := asRecord(item); ok {
			records = append(records, rec)
		}
	}
	return records
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// getInt64Ptr extracts an optional integer value from a map
func getInt64Ptr(m map[string]interface{}, key string) *int64 {
	if n, ok := toInt64(m[key]); ok {
		return &n
	}
	return nil
}

// putIfSet adds optional values to a CONTENT map so absent fields stay NONE
func putIfSet[V any](content map[string]interface{}, key string, v *V) {
	if v != nil {
		content[key] = *v
	}
}
