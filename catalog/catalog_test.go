package catalog_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
	"github.com/AntonStoeckl/lending-catalog-go/testutil/observability/testdoubles"
)

var (
	bookA = catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook)
	bookB = catalog.BuildItem("Book B", "ISBN2", catalog.ItemKindBook)
	dvdF  = catalog.BuildItem("DVD F", "ISBN3", catalog.ItemKindDisc)
)

func Test_Catalog_Scenario(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	c.AddItem(ctx, dvdF)

	maxID := c.RegisterReader(ctx, "Max")
	milanaID := c.RegisterReader(ctx, "Milana")

	// act
	require.NoError(t, c.Lend(ctx, maxID, "ISBN1"))
	require.NoError(t, c.Lend(ctx, maxID, "ISBN2"))
	require.NoError(t, c.Lend(ctx, milanaID, "ISBN3"))

	availableAfterLending := slices.Collect(c.ListAvailable(ctx))
	borrowedAfterLending := slices.Collect(c.ListBorrowed(ctx))

	require.NoError(t, c.ReturnItem(ctx, maxID, "ISBN1"))

	// assert
	assert.Equal(t, catalog.ReaderID(1), maxID)
	assert.Equal(t, catalog.ReaderID(2), milanaID)

	assert.Empty(t, availableAfterLending)
	assert.Equal(t, []catalog.Loan{
		{ReaderID: maxID, ReaderName: "Max", Item: bookA},
		{ReaderID: maxID, ReaderName: "Max", Item: bookB},
		{ReaderID: milanaID, ReaderName: "Milana", Item: dvdF},
	}, borrowedAfterLending)

	assert.Equal(t, []catalog.Item{bookA}, slices.Collect(c.ListAvailable(ctx)))
	assert.Equal(t, []catalog.Loan{
		{ReaderID: maxID, ReaderName: "Max", Item: bookB},
		{ReaderID: milanaID, ReaderName: "Milana", Item: dvdF},
	}, slices.Collect(c.ListBorrowed(ctx)))
}

func Test_Catalog_RegisterReader_AssignsSequentialIDs(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)

	// act
	ids := make([]catalog.ReaderID, 0, 5)
	for range 5 {
		ids = append(ids, c.RegisterReader(ctx, "Same Name"))
	}

	// assert
	assert.Equal(t, []catalog.ReaderID{1, 2, 3, 4, 5}, ids, "IDs are unique even for equal names")

	reader, found := c.Reader(3)
	require.True(t, found)
	assert.Equal(t, "Reader Name: Same Name, Reader ID: 3", reader.String())
}

func Test_Catalog_RegisterReader_IDsAreIndependentPerCatalog(t *testing.T) {
	ctx := context.Background()

	first := newCatalog(t)
	second := newCatalog(t)
	first.RegisterReader(ctx, "Max")

	assert.Equal(t, catalog.ReaderID(1), second.RegisterReader(ctx, "Milana"))
}

func Test_Catalog_Lend_IgnoresIdentifierCase(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	readerID := c.RegisterReader(ctx, "Max")

	// act
	err := c.Lend(ctx, readerID, "isbn1")

	// assert
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(c.ListAvailable(ctx)))

	reader, _ := c.Reader(readerID)
	assert.Equal(t, []catalog.Item{bookA}, reader.BorrowedItems())
}

func Test_Catalog_Lend_TakesFirstMatchOnlyWhenIdentifiersRepeat(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	copyOne := catalog.BuildItem("Copy One", "ISBN1", catalog.ItemKindBook)
	copyTwo := catalog.BuildItem("Copy Two", "isbn1", catalog.ItemKindBook)
	c.AddItem(ctx, copyOne)
	c.AddItem(ctx, bookB)
	c.AddItem(ctx, copyTwo)
	readerID := c.RegisterReader(ctx, "Max")

	// act
	err := c.Lend(ctx, readerID, "ISBN1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, []catalog.Item{bookB, copyTwo}, slices.Collect(c.ListAvailable(ctx)))

	reader, _ := c.Reader(readerID)
	assert.Equal(t, []catalog.Item{copyOne}, reader.BorrowedItems())
}

func Test_Catalog_Lend_Rejections(t *testing.T) {
	testCases := []struct {
		name        string
		readerID    catalog.ReaderID
		identifier  string
		expectedErr error
		message     string
	}{
		{name: "unknown reader", readerID: 99, identifier: "ISBN1", expectedErr: catalog.ErrReaderNotFound, message: "Reader not found."},
		{name: "unknown item", readerID: 1, identifier: "ISBN9", expectedErr: catalog.ErrItemNotFound, message: "Item not found."},
		{name: "unknown reader wins over unknown item", readerID: 99, identifier: "ISBN9", expectedErr: catalog.ErrReaderNotFound, message: "Reader not found."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			notices := testdoubles.NewNoticeRecorder()
			c := newCatalog(t, catalog.WithNoticeHandler(notices.Handle))
			c.AddItem(ctx, bookA)
			c.RegisterReader(ctx, "Max")

			// act
			err := c.Lend(ctx, tc.readerID, tc.identifier)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.True(t, catalog.IsNotFoundError(err))
			assertStateUnchanged(t, c, []catalog.Item{bookA}, nil)

			require.Len(t, notices.Notices(), 1)
			notice := notices.Notices()[0]
			assert.Equal(t, catalog.OperationLendItem, notice.Operation)
			assert.Equal(t, tc.message, notice.Message())
			assert.Equal(t, tc.readerID, notice.ReaderID)
			assert.Equal(t, tc.identifier, notice.Identifier)
			assert.NotEqual(t, uuid.Nil, notice.ID)
		})
	}
}

func Test_Catalog_Lend_AlreadyBorrowedItemIsNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	maxID := c.RegisterReader(ctx, "Max")
	milanaID := c.RegisterReader(ctx, "Milana")
	require.NoError(t, c.Lend(ctx, maxID, "ISBN1"))

	// act
	err := c.Lend(ctx, milanaID, "ISBN1")

	// assert
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func Test_Catalog_ReturnItem_AppendsToEndOfAvailablePool(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	readerID := c.RegisterReader(ctx, "Max")
	require.NoError(t, c.Lend(ctx, readerID, "ISBN1"))

	// act
	err := c.ReturnItem(ctx, readerID, "Isbn1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, []catalog.Item{bookB, bookA}, slices.Collect(c.ListAvailable(ctx)))
	assert.Empty(t, slices.Collect(c.ListBorrowed(ctx)))
}

func Test_Catalog_ReturnItem_Rejections(t *testing.T) {
	testCases := []struct {
		name        string
		readerID    catalog.ReaderID
		identifier  string
		expectedErr error
	}{
		{name: "unknown reader", readerID: 99, identifier: "ISBN1", expectedErr: catalog.ErrReaderNotFound},
		{name: "item not borrowed by reader", readerID: 2, identifier: "ISBN1", expectedErr: catalog.ErrItemNotFound},
		{name: "unknown item", readerID: 1, identifier: "ISBN9", expectedErr: catalog.ErrItemNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			notices := testdoubles.NewNoticeRecorder()
			c := newCatalog(t, catalog.WithNoticeHandler(notices.Handle))
			c.AddItem(ctx, bookA)
			c.AddItem(ctx, bookB)
			maxID := c.RegisterReader(ctx, "Max")
			c.RegisterReader(ctx, "Milana")
			require.NoError(t, c.Lend(ctx, maxID, "ISBN1"))

			// act
			err := c.ReturnItem(ctx, tc.readerID, tc.identifier)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assertStateUnchanged(t, c, []catalog.Item{bookB}, []catalog.Loan{
				{ReaderID: maxID, ReaderName: "Max", Item: bookA},
			})

			require.Len(t, notices.Notices(), 1)
			assert.Equal(t, catalog.OperationReturnItem, notices.Notices()[0].Operation)
		})
	}
}

func Test_Catalog_RemoveByIdentifier(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	duplicate := catalog.BuildItem("Book A (second copy)", "ISBN1", catalog.ItemKindBook)
	lowercase := catalog.BuildItem("Book A (lowercase)", "isbn1", catalog.ItemKindBook)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	c.AddItem(ctx, duplicate)
	c.AddItem(ctx, lowercase)

	// act
	removed := c.RemoveByIdentifier(ctx, "ISBN1")

	// assert
	assert.Equal(t, 2, removed, "Every exact match is removed")
	assert.Equal(t, []catalog.Item{bookB, lowercase}, slices.Collect(c.ListAvailable(ctx)), "Matching is case-sensitive")
}

func Test_Catalog_RemoveByIdentifier_NeverTouchesBorrowedItems(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	readerID := c.RegisterReader(ctx, "Max")
	require.NoError(t, c.Lend(ctx, readerID, "ISBN1"))

	// act
	removed := c.RemoveByIdentifier(ctx, "ISBN1")

	// assert
	assert.Zero(t, removed)
	assert.Len(t, slices.Collect(c.ListBorrowed(ctx)), 1)
}

func Test_Catalog_RemoveByIdentifier_NoMatchIsSilent(t *testing.T) {
	// arrange
	ctx := context.Background()
	notices := testdoubles.NewNoticeRecorder()
	c := newCatalog(t, catalog.WithNoticeHandler(notices.Handle))
	c.AddItem(ctx, bookA)

	// act
	removed := c.RemoveByIdentifier(ctx, "ISBN9")

	// assert
	assert.Zero(t, removed)
	assert.Empty(t, notices.Notices())
	assert.Equal(t, []catalog.Item{bookA}, slices.Collect(c.ListAvailable(ctx)))
}

func Test_Catalog_AddItem_AcceptsDuplicatesAndEmptyIdentifiers(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	empty := catalog.BuildItem("", "", catalog.ItemKindBook)

	// act
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, empty)

	// assert
	assert.Equal(t, []catalog.Item{bookA, bookA, empty}, slices.Collect(c.ListAvailable(ctx)))
}

func Test_Catalog_Listings_AreRestartableAndLazy(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	available := c.ListAvailable(ctx)

	// act
	c.AddItem(ctx, bookB)
	first := slices.Collect(available)
	second := slices.Collect(available)

	// assert
	assert.Equal(t, []catalog.Item{bookA, bookB}, first, "The sequence reflects the state when iteration starts")
	assert.Equal(t, first, second, "Iterating twice yields the same items")
}

func Test_Catalog_Listings_SupportEarlyBreak(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	c.AddItem(ctx, dvdF)
	readerID := c.RegisterReader(ctx, "Max")
	require.NoError(t, c.Lend(ctx, readerID, "ISBN1"))
	require.NoError(t, c.Lend(ctx, readerID, "ISBN2"))

	// act
	var firstItem catalog.Item
	for item := range c.ListAvailable(ctx) {
		firstItem = item
		break
	}

	var firstLoan catalog.Loan
	for loan := range c.ListBorrowed(ctx) {
		firstLoan = loan
		break
	}

	// assert
	assert.Equal(t, dvdF, firstItem)
	assert.Equal(t, bookA, firstLoan.Item)
}

func Test_Catalog_Listings_CanMutateCatalogWhileIterating(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	readerID := c.RegisterReader(ctx, "Max")

	// act
	for item := range c.ListAvailable(ctx) {
		require.NoError(t, c.Lend(ctx, readerID, item.Identifier()))
	}

	// assert
	assert.Empty(t, slices.Collect(c.ListAvailable(ctx)))
	assert.Len(t, slices.Collect(c.ListBorrowed(ctx)), 2)
}

func Test_Catalog_ListBorrowed_GroupsByReaderRegistrationOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.AddItem(ctx, bookB)
	c.AddItem(ctx, dvdF)
	maxID := c.RegisterReader(ctx, "Max")
	milanaID := c.RegisterReader(ctx, "Milana")

	// act
	require.NoError(t, c.Lend(ctx, milanaID, "ISBN3"))
	require.NoError(t, c.Lend(ctx, maxID, "ISBN2"))
	require.NoError(t, c.Lend(ctx, milanaID, "ISBN1"))

	// assert
	assert.Equal(t, []catalog.Loan{
		{ReaderID: maxID, ReaderName: "Max", Item: bookB},
		{ReaderID: milanaID, ReaderName: "Milana", Item: dvdF},
		{ReaderID: milanaID, ReaderName: "Milana", Item: bookA},
	}, slices.Collect(c.ListBorrowed(ctx)))
}

func Test_Catalog_Reader_ReturnsIndependentCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	readerID := c.RegisterReader(ctx, "Max")

	// act
	reader, found := c.Reader(readerID)
	reader.Borrow(bookB)
	_, unknownFound := c.Reader(42)

	// assert
	require.True(t, found)
	assert.False(t, unknownFound)
	assert.Empty(t, slices.Collect(c.ListBorrowed(ctx)), "Mutating the copy must not affect the catalog")
}

func Test_Catalog_EveryItemIsInExactlyOnePlace(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	items := []catalog.Item{bookA, bookB, dvdF}
	for _, item := range items {
		c.AddItem(ctx, item)
	}
	readers := []catalog.ReaderID{c.RegisterReader(ctx, "Max"), c.RegisterReader(ctx, "Milana")}

	steps := []struct {
		lend       bool
		reader     catalog.ReaderID
		identifier string
	}{
		{lend: true, reader: readers[0], identifier: "ISBN1"},
		{lend: true, reader: readers[1], identifier: "isbn1"},
		{lend: false, reader: readers[1], identifier: "ISBN1"},
		{lend: true, reader: readers[1], identifier: "ISBN3"},
		{lend: false, reader: readers[0], identifier: "ISBN1"},
		{lend: true, reader: readers[1], identifier: "ISBN1"},
		{lend: false, reader: 42, identifier: "ISBN2"},
		{lend: true, reader: readers[0], identifier: "ISBN2"},
		{lend: false, reader: readers[1], identifier: "ISBN3"},
	}

	for _, step := range steps {
		// act
		if step.lend {
			_ = c.Lend(ctx, step.reader, step.identifier)
		} else {
			_ = c.ReturnItem(ctx, step.reader, step.identifier)
		}

		// assert
		places := make(map[catalog.Item]int)
		for item := range c.ListAvailable(ctx) {
			places[item]++
		}
		for loan := range c.ListBorrowed(ctx) {
			places[loan.Item]++
		}

		require.Len(t, places, len(items))
		for _, item := range items {
			assert.Equal(t, 1, places[item], "%s should be in exactly one place", item)
		}
	}
}

func Test_Catalog_ConcurrentLendAndReturn(t *testing.T) {
	// arrange
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	readers := []catalog.ReaderID{c.RegisterReader(ctx, "Max"), c.RegisterReader(ctx, "Milana")}

	// act
	var wg sync.WaitGroup
	for _, readerID := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range 100 {
				if c.Lend(ctx, readerID, "ISBN1") == nil {
					assert.NoError(t, c.ReturnItem(ctx, readerID, "ISBN1"))
				}
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, []catalog.Item{bookA}, slices.Collect(c.ListAvailable(ctx)))
	assert.Empty(t, slices.Collect(c.ListBorrowed(ctx)))
}

func Test_Catalog_WithClock_TimestampsNotices(t *testing.T) {
	// arrange
	ctx := context.Background()
	fixed := time.Date(2024, 5, 17, 10, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	notices := testdoubles.NewNoticeRecorder()
	c := newCatalog(t,
		catalog.WithClock(func() time.Time { return fixed }),
		catalog.WithNoticeHandler(notices.Handle),
	)

	// act
	err := c.ReturnItem(ctx, 1, "ISBN1")

	// assert
	require.Error(t, err)
	assert.Equal(t, "ReturnItem: reader not found", err.Error())

	require.Len(t, notices.Notices(), 1)
	notice := notices.Notices()[0]
	assert.True(t, fixed.Equal(notice.OccurredAt))
	assert.Equal(t, time.UTC, notice.OccurredAt.Location())
	assert.Equal(t, "reader not found", notice.Reason)
}

func Test_NewCatalog_WithNilClock(t *testing.T) {
	c, err := catalog.NewCatalog(catalog.WithClock(nil))

	assert.ErrorIs(t, err, catalog.ErrNilClock)
	assert.Nil(t, c)
}

func Test_Catalog_NoticeHandler_MayCallBackIntoCatalog(t *testing.T) {
	// arrange
	ctx := context.Background()
	var c *catalog.Catalog
	availableSeen := -1
	c = newCatalog(t, catalog.WithNoticeHandler(func(catalog.Notice) {
		availableSeen = len(slices.Collect(c.ListAvailable(ctx)))
	}))
	c.AddItem(ctx, bookA)

	// act
	err := c.Lend(ctx, 7, "ISBN1")

	// assert
	assert.ErrorIs(t, err, catalog.ErrReaderNotFound)
	assert.Equal(t, 1, availableSeen)
}

func Test_Catalog_String(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	c.AddItem(ctx, bookA)
	c.RegisterReader(ctx, "Max")

	assert.Equal(t, "Catalog(available: 1, readers: 1)", c.String())
}

func newCatalog(t *testing.T, options ...catalog.Option) *catalog.Catalog {
	t.Helper()

	c, err := catalog.NewCatalog(options...)
	require.NoError(t, err, "Failed to create catalog")

	return c
}

func assertStateUnchanged(t *testing.T, c *catalog.Catalog, expectedAvailable []catalog.Item, expectedLoans []catalog.Loan) {
	t.Helper()

	ctx := context.Background()

	if expectedAvailable == nil {
		assert.Empty(t, slices.Collect(c.ListAvailable(ctx)))
	} else {
		assert.Equal(t, expectedAvailable, slices.Collect(c.ListAvailable(ctx)))
	}

	if expectedLoans == nil {
		assert.Empty(t, slices.Collect(c.ListBorrowed(ctx)))
	} else {
		assert.Equal(t, expectedLoans, slices.Collect(c.ListBorrowed(ctx)))
	}
}
