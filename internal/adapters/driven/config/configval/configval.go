// Package configval coerces loosely typed settings values. TOML decodes
// integers as int64 and arrays as []any, while in-process callers store
// plain Go types, so both config stores read through these helpers.
package configval

// String returns v when it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int accepts any of the integer shapes a decoder may produce.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Bool returns v when it is a bool.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings keeps the string items of a slice and drops the rest.
func Strings(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
