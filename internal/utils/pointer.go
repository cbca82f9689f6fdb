package utils

// Ptr returns a pointer to v, for optional fields set from literals or
// computed values.
func Ptr[T any](v T) *T {
	return &v
}
