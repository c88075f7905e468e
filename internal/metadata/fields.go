package metadata

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Typed accessors for decoded metadata maps. JSON numbers arrive as float64;
// absent and null values are treated the same.

// Has reports whether key is present with a non-nil value
func Has(m map[string]interface{}, key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

// String returns the string at key, nil when absent or not a string
func String(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// Bool returns the bool at key and whether it was present
func Bool(m map[string]interface{}, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

// Int32 returns the integer at key, nil when absent or not a number
func Int32(m map[string]interface{}, key string) *int32 {
	if v, ok := m[key].(float64); ok {
		n := int32(v)
		return &n
	}
	return nil
}

// Int64 returns the integer at key, nil when absent or not a number
func Int64(m map[string]interface{}, key string) *int64 {
	if v, ok := m[key].(float64); ok {
		n := int64(v)
		return &n
	}
	return nil
}

// Raw re-encodes the value at key for storage in a JSONB column.
// Returns nil, false when the key is absent or null.
func Raw(m map[string]interface{}, key string) (datatypes.JSON, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return datatypes.JSON(b), true
}

// Object returns the nested object at key, nil when absent or not an object
func Object(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}
