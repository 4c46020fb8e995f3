// Package report renders catalog listings, reader registrations and notices.
//
// TextPrinter writes the plain, human-readable lines of the lending demo.
// JSONPrinter writes one JSON document per call (newline delimited), so the same
// scenario can be consumed by other tools.
package report
