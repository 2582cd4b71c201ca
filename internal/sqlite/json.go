package sqlite

import (
	"encoding/json"
	"fmt"
)

// Ordered ID lists and free-form maps are stored as JSON in TEXT columns:
// JSON arrays keep the sequence order the data model requires.

// marshalStrings encodes a string slice as a JSON array, mapping nil to [].
func marshalStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	data, err := json.Marshal(ss)
	if err != nil {
		return "", fmt.Errorf("marshaling string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings decodes a JSON array column into a string slice.
func unmarshalStrings(raw string) ([]string, error) {
	var ss []string
	if err := json.Unmarshal([]byte(raw), &ss); err != nil {
		return nil, fmt.Errorf("parsing string list: %w", err)
	}
	if ss == nil {
		ss = []string{}
	}
	return ss, nil
}

// marshalGlobals encodes a theme's globals map, mapping nil to {}.
func marshalGlobals(g map[string]any) (string, error) {
	if g == nil {
		g = map[string]any{}
	}
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshaling globals: %w", err)
	}
	return string(data), nil
}

// unmarshalGlobals decodes a theme's globals column.
func unmarshalGlobals(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var g map[string]any
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("parsing globals: %w", err)
	}
	if g == nil {
		g = map[string]any{}
	}
	return g, nil
}
