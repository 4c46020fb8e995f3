package catalog

import (
	"context"
	"iter"
	"slices"
	"strconv"
	"sync"
	"time"
)

const firstReaderID ReaderID = 1

// Loan pairs a borrowed item with the reader holding it.
type Loan struct {
	ReaderID   ReaderID
	ReaderName string
	Item       Item
}

// Catalog owns all items and readers and mediates every state transition between them.
type Catalog struct {
	mu             sync.Mutex
	availableItems []Item
	readers        map[ReaderID]*Reader
	readerOrder    []ReaderID
	nextReaderID   ReaderID

	noticeHandler   NoticeHandler
	now             func() time.Time
	instrumentation instrumentation
}

// NewCatalog creates an empty Catalog with optional configuration.
func NewCatalog(options ...Option) (*Catalog, error) {
	c := &Catalog{
		readers:      make(map[ReaderID]*Reader),
		nextReaderID: firstReaderID,
		now:          time.Now,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// AddItem appends the item to the available pool. It always succeeds.
func (c *Catalog) AddItem(ctx context.Context, item Item) {
	run := c.instrumentation.startOperation(ctx, OperationAddItem, map[string]string{
		LogAttrIdentifier: item.identifier,
	})

	c.mu.Lock()
	c.availableItems = append(c.availableItems, item)
	inv := c.inventoryLocked()
	c.mu.Unlock()

	c.instrumentation.recordInventory(run.ctx, inv)
	c.instrumentation.completeOperation(run, LogAttrIdentifier, item.identifier)
}

// RemoveByIdentifier removes every available item whose identifier equals identifier exactly (case-sensitive)
// and returns how many were removed. Borrowed items are never touched; zero matches is a silent no-op.
func (c *Catalog) RemoveByIdentifier(ctx context.Context, identifier string) int {
	run := c.instrumentation.startOperation(ctx, OperationRemoveByIdentifier, map[string]string{
		LogAttrIdentifier: identifier,
	})

	c.mu.Lock()
	before := len(c.availableItems)
	c.availableItems = slices.DeleteFunc(c.availableItems, func(item Item) bool {
		return item.identifier == identifier
	})
	removed := before - len(c.availableItems)
	inv := c.inventoryLocked()
	c.mu.Unlock()

	c.instrumentation.recordInventory(run.ctx, inv)
	c.instrumentation.completeOperation(run, LogAttrIdentifier, identifier, LogAttrRemoved, removed)

	return removed
}

// RegisterReader creates a reader with the next sequential ID and returns that ID. It always succeeds.
func (c *Catalog) RegisterReader(ctx context.Context, name string) ReaderID {
	run := c.instrumentation.startOperation(ctx, OperationRegisterReader, nil)

	c.mu.Lock()
	id := c.nextReaderID
	c.nextReaderID++
	c.readers[id] = newReader(name, id)
	c.readerOrder = append(c.readerOrder, id)
	inv := c.inventoryLocked()
	c.mu.Unlock()

	c.instrumentation.recordInventory(run.ctx, inv)
	c.instrumentation.completeOperation(run, LogAttrReaderID, int(id))

	return id
}

// Lend moves the first available item whose identifier matches (ignoring case) to the reader's borrowed items.
//
// Errors (state is left unchanged and a Notice is reported):
//   - ErrReaderNotFound if no reader is registered under readerID
//   - ErrItemNotFound if no available item matches identifier
func (c *Catalog) Lend(ctx context.Context, readerID ReaderID, identifier string) error {
	run := c.instrumentation.startOperation(ctx, OperationLendItem, map[string]string{
		LogAttrReaderID:   readerIDAttr(readerID),
		LogAttrIdentifier: identifier,
	})

	c.mu.Lock()
	item, err := c.lendLocked(readerID, identifier)
	inv := c.inventoryLocked()
	c.mu.Unlock()

	if err != nil {
		return c.reject(run, readerID, identifier, err)
	}

	c.instrumentation.recordInventory(run.ctx, inv)
	c.instrumentation.completeOperation(run, LogAttrReaderID, int(readerID), LogAttrIdentifier, item.identifier)

	return nil
}

// ReturnItem moves the first item the reader has borrowed whose identifier matches (ignoring case)
// back to the end of the available pool.
//
// Errors (state is left unchanged and a Notice is reported):
//   - ErrReaderNotFound if no reader is registered under readerID
//   - ErrItemNotFound if the reader has not borrowed a matching item
func (c *Catalog) ReturnItem(ctx context.Context, readerID ReaderID, identifier string) error {
	run := c.instrumentation.startOperation(ctx, OperationReturnItem, map[string]string{
		LogAttrReaderID:   readerIDAttr(readerID),
		LogAttrIdentifier: identifier,
	})

	c.mu.Lock()
	item, err := c.returnLocked(readerID, identifier)
	inv := c.inventoryLocked()
	c.mu.Unlock()

	if err != nil {
		return c.reject(run, readerID, identifier, err)
	}

	c.instrumentation.recordInventory(run.ctx, inv)
	c.instrumentation.completeOperation(run, LogAttrReaderID, int(readerID), LogAttrIdentifier, item.identifier)

	return nil
}

// ListAvailable returns the available items in insertion order.
// The sequence is lazy and restartable: every iteration reflects the state at the time it starts.
func (c *Catalog) ListAvailable(ctx context.Context) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		run := c.instrumentation.startOperation(ctx, OperationListAvailable, nil)

		c.mu.Lock()
		items := slices.Clone(c.availableItems)
		c.mu.Unlock()

		c.instrumentation.completeOperation(run, LogAttrCount, len(items))

		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// ListBorrowed returns one Loan per borrowed item, grouped by reader in registration order
// and in borrow order within each reader.
// The sequence is lazy and restartable: every iteration reflects the state at the time it starts.
func (c *Catalog) ListBorrowed(ctx context.Context) iter.Seq[Loan] {
	return func(yield func(Loan) bool) {
		run := c.instrumentation.startOperation(ctx, OperationListBorrowed, nil)

		c.mu.Lock()
		var loans []Loan
		for _, id := range c.readerOrder {
			reader := c.readers[id]
			for _, item := range reader.borrowedItems {
				loans = append(loans, Loan{
					ReaderID:   reader.id,
					ReaderName: reader.name,
					Item:       item,
				})
			}
		}
		c.mu.Unlock()

		c.instrumentation.completeOperation(run, LogAttrCount, len(loans))

		for _, loan := range loans {
			if !yield(loan) {
				return
			}
		}
	}
}

// Reader returns a copy of the reader registered under id.
func (c *Catalog) Reader(id ReaderID) (Reader, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reader, ok := c.readers[id]
	if !ok {
		return Reader{}, false
	}

	return reader.clone(), true
}

func (c *Catalog) lendLocked(readerID ReaderID, identifier string) (Item, error) {
	reader, ok := c.readers[readerID]
	if !ok {
		return Item{}, ErrReaderNotFound
	}

	idx := indexOfIdentifier(c.availableItems, identifier)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}

	// Only the matched record leaves the pool; other records sharing the identifier stay available.
	item := c.availableItems[idx]
	reader.Borrow(item)
	c.availableItems = slices.Delete(c.availableItems, idx, idx+1)

	return item, nil
}

func (c *Catalog) returnLocked(readerID ReaderID, identifier string) (Item, error) {
	reader, ok := c.readers[readerID]
	if !ok {
		return Item{}, ErrReaderNotFound
	}

	item, found := reader.FindBorrowed(identifier)
	if !found {
		return Item{}, ErrItemNotFound
	}

	reader.Return(item)
	c.availableItems = append(c.availableItems, item)

	return item, nil
}

func (c *Catalog) reject(run operationRun, readerID ReaderID, identifier string, cause error) error {
	notice := buildNotice(run.operation, readerID, identifier, cause, c.now())

	c.instrumentation.rejectOperation(run, notice)

	if c.noticeHandler != nil {
		c.noticeHandler(notice)
	}

	return notice.Err
}

func (c *Catalog) inventoryLocked() inventory {
	borrowed := 0
	for _, reader := range c.readers {
		borrowed += len(reader.borrowedItems)
	}

	return inventory{
		available: len(c.availableItems),
		borrowed:  borrowed,
		readers:   len(c.readers),
	}
}

// String summarises the catalog, e.g. "Catalog(available: 3, readers: 2)".
func (c *Catalog) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return "Catalog(available: " + strconv.Itoa(len(c.availableItems)) + ", readers: " + strconv.Itoa(len(c.readers)) + ")"
}
