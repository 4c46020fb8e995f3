package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownItemKind is returned when an item kind label cannot be parsed.
var ErrUnknownItemKind = errors.New("unknown item kind")

// ItemKind enumerates the kinds of lendable works.
type ItemKind int

const (
	// ItemKindBook is a printed book.
	ItemKindBook ItemKind = iota

	// ItemKindDisc is an optical disc (DVD).
	ItemKindDisc
)

const (
	itemKindBookLabel = "BOOK"
	itemKindDiscLabel = "DVD"
)

// String returns the label used when rendering items.
func (k ItemKind) String() string {
	switch k {
	case ItemKindBook:
		return itemKindBookLabel
	case ItemKindDisc:
		return itemKindDiscLabel
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// ParseItemKind parses an item kind label, ignoring case. "DISC" is accepted as an alias for "DVD".
func ParseItemKind(label string) (ItemKind, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case itemKindBookLabel:
		return ItemKindBook, nil
	case itemKindDiscLabel, "DISC":
		return ItemKindDisc, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownItemKind, label)
	}
}

// Item is an immutable record describing a lendable work.
// Items are comparable by value.
type Item struct {
	title      string
	identifier string
	kind       ItemKind
}

// BuildItem creates a new Item. No validation is applied: empty or duplicate identifiers are accepted.
func BuildItem(title string, identifier string, kind ItemKind) Item {
	return Item{
		title:      title,
		identifier: identifier,
		kind:       kind,
	}
}

// Title returns the title of the work.
func (i Item) Title() string {
	return i.title
}

// Identifier returns the identifier (ISBN) of the item.
func (i Item) Identifier() string {
	return i.identifier
}

// Kind returns the kind of the item.
func (i Item) Kind() ItemKind {
	return i.kind
}

// String renders the item as "Title: {title}, ISBN: {identifier}, Type: {kind}".
func (i Item) String() string {
	return "Title: " + i.title + ", ISBN: " + i.identifier + ", Type: " + i.kind.String()
}
