package functional

// Map applies f to every element. The result is never nil so that empty
// collections encode as [] rather than null.
func Map[T, V any](items []T, f func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, f(item))
	}
	return out
}
