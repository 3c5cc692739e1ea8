package rules

// Alternate returns the side that moves after current. Anything other than
// first or second is treated as first.
func Alternate[T comparable](current, first, second T) T {
	if current == first {
		return second
	}

	return first
}
