package properties

import "strconv"

// Body helpers tolerate the frontend sending numbers either as JSON numbers
// or as strings, the way the React forms did.

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}

// asID parses an identifier that may arrive as a number or a numeric string.
// Returns 0 when absent or unparseable; ids are never 0.
func asID(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		id, _ := strconv.ParseInt(t, 10, 64)
		return id
	}
	return 0
}

func asStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asOptionalStringSlice distinguishes an absent key (nil: leave the stored
// set untouched) from an explicit empty array (clear the set).
func asOptionalStringSlice(body map[string]interface{}, key string) *[]string {
	raw, ok := body[key]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return &out
}
