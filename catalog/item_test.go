package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
)

func Test_Item_String(t *testing.T) {
	testCases := []struct {
		name     string
		item     catalog.Item
		expected string
	}{
		{
			name:     "book",
			item:     catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook),
			expected: "Title: Book A, ISBN: ISBN1, Type: BOOK",
		},
		{
			name:     "disc",
			item:     catalog.BuildItem("DVD F", "ISBN3", catalog.ItemKindDisc),
			expected: "Title: DVD F, ISBN: ISBN3, Type: DVD",
		},
		{
			name:     "empty fields are rendered verbatim",
			item:     catalog.BuildItem("", "", catalog.ItemKindBook),
			expected: "Title: , ISBN: , Type: BOOK",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.item.String())
		})
	}
}

func Test_Item_Accessors(t *testing.T) {
	item := catalog.BuildItem("Book B", "ISBN2", catalog.ItemKindBook)

	assert.Equal(t, "Book B", item.Title())
	assert.Equal(t, "ISBN2", item.Identifier())
	assert.Equal(t, catalog.ItemKindBook, item.Kind())
}

func Test_Item_EqualityByValue(t *testing.T) {
	a := catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook)
	b := catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook)
	c := catalog.BuildItem("Book A", "isbn1", catalog.ItemKindBook)

	assert.Equal(t, a, b, "Items with equal fields should be equal")
	assert.NotEqual(t, a, c, "Item equality is case-sensitive")
}

func Test_ItemKind_String_Unknown(t *testing.T) {
	assert.Equal(t, "ItemKind(7)", catalog.ItemKind(7).String())
}

func Test_ParseItemKind(t *testing.T) {
	testCases := []struct {
		label    string
		expected catalog.ItemKind
	}{
		{label: "BOOK", expected: catalog.ItemKindBook},
		{label: "book", expected: catalog.ItemKindBook},
		{label: " Dvd ", expected: catalog.ItemKindDisc},
		{label: "disc", expected: catalog.ItemKindDisc},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			kind, err := catalog.ParseItemKind(tc.label)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func Test_ParseItemKind_Unknown(t *testing.T) {
	_, err := catalog.ParseItemKind("vinyl")

	assert.ErrorIs(t, err, catalog.ErrUnknownItemKind)
	assert.Contains(t, err.Error(), `"vinyl"`)
}
