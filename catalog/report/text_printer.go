package report

import (
	"bufio"
	"io"
	"iter"
	"strconv"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
)

// TextPrinter writes plain text. Consecutive sections are separated by an empty line.
type TextPrinter struct {
	w       io.Writer
	started bool
}

// NewTextPrinter creates a TextPrinter writing to w.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{w: w}
}

// Items writes the heading and then one "Title: ..., ISBN: ..., Type: ..." line per item.
func (p *TextPrinter) Items(heading string, items iter.Seq[catalog.Item]) error {
	bw := p.beginSection()
	writeLine(bw, heading)

	for item := range items {
		writeLine(bw, item.String())
	}

	return bw.Flush()
}

// Loans writes the heading and then one "Borrowed by {name}: {item}" line per loan.
func (p *TextPrinter) Loans(heading string, loans iter.Seq[catalog.Loan]) error {
	bw := p.beginSection()
	writeLine(bw, heading)

	for loan := range loans {
		writeLine(bw, "Borrowed by "+loan.ReaderName+": "+loan.Item.String())
	}

	return bw.Flush()
}

// Registrations writes one "Registered Reader with ID: {id}" line per ID.
func (p *TextPrinter) Registrations(ids ...catalog.ReaderID) error {
	bw := p.beginSection()

	for _, id := range ids {
		writeLine(bw, "Registered Reader with ID: "+strconv.Itoa(int(id)))
	}

	return bw.Flush()
}

// Notice writes the notice message, e.g. "Item not found.", within the current section.
func (p *TextPrinter) Notice(notice catalog.Notice) error {
	bw := bufio.NewWriter(p.w)
	writeLine(bw, notice.Message())
	p.started = true

	return bw.Flush()
}

func (p *TextPrinter) beginSection() *bufio.Writer {
	bw := bufio.NewWriter(p.w)

	if p.started {
		writeLine(bw, "")
	}

	p.started = true

	return bw
}

// writeLine ignores write errors, bufio.Writer keeps the first one and reports it on Flush.
func writeLine(bw *bufio.Writer, line string) {
	_, _ = bw.WriteString(line)
	_ = bw.WriteByte('\n')
}
