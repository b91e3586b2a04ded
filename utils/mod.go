package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Contains checks if a slice contains a specific item. (avoid duplicate edges etc..)
func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}
