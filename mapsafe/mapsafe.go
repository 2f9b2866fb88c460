package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if v, ok := Lookup[T](m, key); ok {
		return v
	}
	return defaultValue
}

// Lookup retrieves a typed value from a map[string]any and reports whether
// the key was present with a convertible type.
// Numeric scalars are converted between int, int64 and float64; any other
// type, including slices, must match exactly.
func Lookup[T any](m map[string]any, key string) (T, bool) {
	var zero T

	val, ok := m[key]
	if !ok {
		return zero, false
	}

	switch any(zero).(type) {
	case int:
		switch x := val.(type) {
		case int:
			return any(x).(T), true
		case int64:
			return any(int(x)).(T), true
		case float64:
			return any(int(x)).(T), true
		}
	case int64:
		switch x := val.(type) {
		case int64:
			return any(x).(T), true
		case int:
			return any(int64(x)).(T), true
		case float64:
			return any(int64(x)).(T), true
		}
	case float64:
		switch x := val.(type) {
		case float64:
			return any(x).(T), true
		case int:
			return any(float64(x)).(T), true
		case int64:
			return any(float64(x)).(T), true
		}
	default:
		if v, ok := val.(T); ok {
			return v, true
		}
	}

	return zero, false
}
