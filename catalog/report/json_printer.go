package report

import (
	"io"
	"iter"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
)

const (
	// SectionItems marks a document produced by JSONPrinter.Items.
	SectionItems = "items"

	// SectionLoans marks a document produced by JSONPrinter.Loans.
	SectionLoans = "loans"

	// SectionRegistrations marks a document produced by JSONPrinter.Registrations.
	SectionRegistrations = "registrations"

	// SectionNotice marks a document produced by JSONPrinter.Notice.
	SectionNotice = "notice"
)

// ItemDocument is the JSON form of a catalog.Item.
type ItemDocument struct {
	Title      string `json:"title"`
	Identifier string `json:"identifier"`
	Kind       string `json:"kind"`
}

// ToItem converts the document back into a catalog.Item.
func (d ItemDocument) ToItem() (catalog.Item, error) {
	kind, err := catalog.ParseItemKind(d.Kind)
	if err != nil {
		return catalog.Item{}, err
	}

	return catalog.BuildItem(d.Title, d.Identifier, kind), nil
}

// LoanDocument is the JSON form of a catalog.Loan.
type LoanDocument struct {
	ReaderID   int          `json:"readerId"`
	ReaderName string       `json:"readerName"`
	Item       ItemDocument `json:"item"`
}

// NoticeDocument is the JSON form of a catalog.Notice.
type NoticeDocument struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	Reason     string    `json:"reason"`
	Message    string    `json:"message"`
	ReaderID   int       `json:"readerId"`
	Identifier string    `json:"identifier"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Document is one line of JSONPrinter output. Only the fields of its Section are set.
type Document struct {
	Section   string          `json:"section"`
	Heading   string          `json:"heading,omitempty"`
	Items     []ItemDocument  `json:"items,omitempty"`
	Loans     []LoanDocument  `json:"loans,omitempty"`
	ReaderIDs []int           `json:"readerIds,omitempty"`
	Notice    *NoticeDocument `json:"notice,omitempty"`
}

// JSONPrinter writes newline-delimited JSON documents.
type JSONPrinter struct {
	w   io.Writer
	api jsoniter.API
}

// NewJSONPrinter creates a JSONPrinter writing to w.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{
		w:   w,
		api: jsoniter.ConfigCompatibleWithStandardLibrary,
	}
}

// Items writes an "items" document. An empty listing omits the "items" field.
func (p *JSONPrinter) Items(heading string, items iter.Seq[catalog.Item]) error {
	var docs []ItemDocument
	for item := range items {
		docs = append(docs, toItemDocument(item))
	}

	return p.write(Document{Section: SectionItems, Heading: heading, Items: docs})
}

// Loans writes a "loans" document.
func (p *JSONPrinter) Loans(heading string, loans iter.Seq[catalog.Loan]) error {
	var docs []LoanDocument
	for loan := range loans {
		docs = append(docs, LoanDocument{
			ReaderID:   int(loan.ReaderID),
			ReaderName: loan.ReaderName,
			Item:       toItemDocument(loan.Item),
		})
	}

	return p.write(Document{Section: SectionLoans, Heading: heading, Loans: docs})
}

// Registrations writes a "registrations" document.
func (p *JSONPrinter) Registrations(ids ...catalog.ReaderID) error {
	readerIDs := make([]int, 0, len(ids))
	for _, id := range ids {
		readerIDs = append(readerIDs, int(id))
	}

	return p.write(Document{Section: SectionRegistrations, ReaderIDs: readerIDs})
}

// Notice writes a "notice" document.
func (p *JSONPrinter) Notice(notice catalog.Notice) error {
	return p.write(Document{
		Section: SectionNotice,
		Notice: &NoticeDocument{
			ID:         notice.ID.String(),
			Operation:  notice.Operation,
			Reason:     notice.Reason,
			Message:    notice.Message(),
			ReaderID:   int(notice.ReaderID),
			Identifier: notice.Identifier,
			OccurredAt: notice.OccurredAt,
		},
	})
}

// DecodeDocument parses one line written by JSONPrinter.
func DecodeDocument(line []byte) (Document, error) {
	var doc Document
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(line, &doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func (p *JSONPrinter) write(doc Document) error {
	data, err := p.api.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = p.w.Write(append(data, '\n'))

	return err
}

func toItemDocument(item catalog.Item) ItemDocument {
	return ItemDocument{
		Title:      item.Title(),
		Identifier: item.Identifier(),
		Kind:       item.Kind().String(),
	}
}
