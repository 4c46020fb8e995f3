package report

import (
	"iter"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
)

// Printer renders the observable outcomes of catalog operations.
type Printer interface {
	// Items renders a heading followed by the given items.
	Items(heading string, items iter.Seq[catalog.Item]) error

	// Loans renders a heading followed by one line per borrowed item.
	Loans(heading string, loans iter.Seq[catalog.Loan]) error

	// Registrations renders the IDs of newly registered readers.
	Registrations(ids ...catalog.ReaderID) error

	// Notice renders the notice of a rejected operation.
	Notice(notice catalog.Notice) error
}
