// Package models defines the CineScribe domain records and their codec
// to and from the generic tree values stored in the remote document store.
package models

import (
	"fmt"

	"github.com/cinescribe/cinescribe/internal/common"
)

// stringField extracts a required string field from a decoded tree value.
func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", common.ErrDecode, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", common.ErrDecode, key)
	}
	return s, nil
}

// optionalString extracts an optional string field; absence yields "".
func optionalString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// numberField coerces a tree value into an int64. JSON decoding produces
// float64, while values written in-process may still be Go integers.
func numberField(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// asObject asserts that a tree value is an object node.
func asObject(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: value is not an object", common.ErrDecode)
	}
	return m, nil
}
