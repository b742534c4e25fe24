// Package utils contains general helper functions used across the nanodoc tool.
package utils

import "strings"

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// IsHiddenName reports whether a file or directory name is a dot entry.
// The current and parent directory markers do not count as hidden.
func IsHiddenName(entryName string) bool {
	if entryName == "." || entryName == ".." {
		return false
	}
	return strings.HasPrefix(entryName, ".")
}
