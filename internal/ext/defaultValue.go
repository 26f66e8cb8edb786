/*
Package ext is "language extensions", functionality that in a perfect world would be part of the golang standard library
*/
package ext

func DefaultValue[T comparable](value T, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

func Max(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
