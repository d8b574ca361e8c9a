package response

// List returns items ready to be rendered as a JSON array.
// A nil slice is replaced so the body is [] rather than null.
func List[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
