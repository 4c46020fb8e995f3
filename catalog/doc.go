// Package catalog provides an in-memory lending catalog: a pool of available items,
// a registry of readers and the operations that move items between them.
//
// Each item record is either available or borrowed by exactly one reader.
// Items move with Lend and ReturnItem:
//
//	Available -> (Lend) -> Borrowed(by reader R) -> (ReturnItem) -> Available
//
// Lookups by identifier are case-insensitive (Unicode case folding), while
// RemoveByIdentifier matches identifiers exactly.
//
// Failed operations never panic and never change state. They return an error
// wrapping ErrReaderNotFound or ErrItemNotFound and report a Notice to the
// NoticeHandler configured with WithNoticeHandler.
//
// Common usage pattern:
//
//	c, err := catalog.NewCatalog(catalog.WithLogger(slog.Default()))
//	if err != nil {
//		// handle error
//	}
//
//	c.AddItem(ctx, catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook))
//	readerID := c.RegisterReader(ctx, "Max")
//
//	if err := c.Lend(ctx, readerID, "isbn1"); err != nil {
//		// errors.Is(err, catalog.ErrItemNotFound) ...
//	}
//
//	for item := range c.ListAvailable(ctx) {
//		fmt.Println(item)
//	}
//
// A Catalog is safe for use by multiple goroutines; all state transitions happen
// under a single mutex.
package catalog
