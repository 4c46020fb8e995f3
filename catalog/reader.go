package catalog

import (
	"slices"
	"strconv"
)

// ReaderID identifies a registered reader. IDs are assigned sequentially starting at 1.
type ReaderID int

// Reader is a registered patron holding the items currently borrowed, in borrow order.
type Reader struct {
	name          string
	id            ReaderID
	borrowedItems []Item
}

func newReader(name string, id ReaderID) *Reader {
	return &Reader{
		name: name,
		id:   id,
	}
}

// Name returns the reader's name.
func (r *Reader) Name() string {
	return r.name
}

// ID returns the reader's ID.
func (r *Reader) ID() ReaderID {
	return r.id
}

// BorrowedItems returns a copy of the borrowed items in borrow order.
func (r *Reader) BorrowedItems() []Item {
	return slices.Clone(r.borrowedItems)
}

// Borrow appends the item to the borrowed items. There is no duplicate check and no limit.
func (r *Reader) Borrow(item Item) {
	r.borrowedItems = append(r.borrowedItems, item)
}

// Return removes the first borrowed item equal to item. It is a no-op if there is none.
func (r *Reader) Return(item Item) {
	if idx := slices.Index(r.borrowedItems, item); idx >= 0 {
		r.borrowedItems = slices.Delete(r.borrowedItems, idx, idx+1)
	}
}

// FindBorrowed returns the first borrowed item whose identifier matches, ignoring case.
func (r *Reader) FindBorrowed(identifier string) (Item, bool) {
	idx := indexOfIdentifier(r.borrowedItems, identifier)
	if idx < 0 {
		return Item{}, false
	}

	return r.borrowedItems[idx], true
}

// String renders the reader as "Reader Name: {name}, Reader ID: {id}".
func (r *Reader) String() string {
	return "Reader Name: " + r.name + ", Reader ID: " + strconv.Itoa(int(r.id))
}

func (r *Reader) clone() Reader {
	return Reader{
		name:          r.name,
		id:            r.id,
		borrowedItems: slices.Clone(r.borrowedItems),
	}
}
