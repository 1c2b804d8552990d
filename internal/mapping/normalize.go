package mapping

// Normalize converts the literal strings "yes" and "no" to booleans.
// The match is exact and case-sensitive; every other value, including
// lists and nested mappings, passes through unchanged. Normalizing an
// already-normalized value is a no-op.
func Normalize(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "yes":
		return true
	case "no":
		return false
	default:
		return v
	}
}
