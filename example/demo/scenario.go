package main

import (
	"context"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
	"github.com/AntonStoeckl/lending-catalog-go/catalog/report"
)

const (
	headingAllItems                = "All Items in Library:"
	headingAvailableAfterLending   = "Available Items in Library after lending:"
	headingAvailableAfterReturning = "Available Items in Library after returning:"
	headingBorrowedItems           = "Borrowed Items:"
)

func scenarioItems() []catalog.Item {
	return []catalog.Item{
		catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook),
		catalog.BuildItem("Book B", "ISBN2", catalog.ItemKindBook),
		catalog.BuildItem("DVD F", "ISBN3", catalog.ItemKindDisc),
	}
}

// runScenario plays the fixed lending scenario against c and renders every step with printer.
// Rejected lend and return calls are not failures here: their notices reach the printer
// through the catalog's notice handler. Only printer errors are returned.
func runScenario(ctx context.Context, c *catalog.Catalog, printer report.Printer) error {
	for _, item := range scenarioItems() {
		c.AddItem(ctx, item)
	}

	if err := printer.Items(headingAllItems, c.ListAvailable(ctx)); err != nil {
		return err
	}

	maxID := c.RegisterReader(ctx, "Max")
	milanaID := c.RegisterReader(ctx, "Milana")

	if err := printer.Registrations(maxID, milanaID); err != nil {
		return err
	}

	_ = c.Lend(ctx, maxID, "ISBN1")
	_ = c.Lend(ctx, maxID, "ISBN2")
	_ = c.Lend(ctx, milanaID, "ISBN3")

	if err := printer.Items(headingAvailableAfterLending, c.ListAvailable(ctx)); err != nil {
		return err
	}

	if err := printer.Loans(headingBorrowedItems, c.ListBorrowed(ctx)); err != nil {
		return err
	}

	_ = c.ReturnItem(ctx, maxID, "ISBN1")

	if err := printer.Items(headingAvailableAfterReturning, c.ListAvailable(ctx)); err != nil {
		return err
	}

	return printer.Loans(headingBorrowedItems, c.ListBorrowed(ctx))
}
