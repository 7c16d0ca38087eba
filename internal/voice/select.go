package voice

// FirstProvider returns the first candidate accepted by validate. Selection
// is strictly first-match; later candidates are never consulted.
func FirstProvider[T any](candidates []any, validate func(any) (T, bool)) (T, bool) {
	for _, c := range candidates {
		if p, ok := validate(c); ok {
			return p, true
		}
	}
	var zero T
	return zero, false
}
