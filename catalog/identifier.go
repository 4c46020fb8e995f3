package catalog

import (
	"golang.org/x/text/cases"
)

// identifiersMatch reports whether two identifiers are equal under Unicode case folding.
// A Caser is stateful, so a fresh one is used per comparison.
func identifiersMatch(a, b string) bool {
	if a == b {
		return true
	}

	fold := cases.Fold()

	return fold.String(a) == fold.String(b)
}

// indexOfIdentifier returns the position of the first item whose identifier matches, or -1.
func indexOfIdentifier(items []Item, identifier string) int {
	for i, item := range items {
		if identifiersMatch(item.identifier, identifier) {
			return i
		}
	}

	return -1
}
