// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// ParseID converts a path segment into a positive integer identifier.
// It reports false for empty, non-numeric, zero, negative or overflowing
// input; callers treat that the same as an unknown id.
//
// Example:
//
//	id, ok := utils.ParseID("42")  // 42, true
//	_, ok = utils.ParseID("abc")   // 0, false
//	_, ok = utils.ParseID("-3")    // 0, false
func ParseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
