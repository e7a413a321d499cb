package collection

import (
	"testing"

	"tabreed-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Unit " + id, Price: price, Stock: 10, IsActive: true}
}

func TestCartAddMergesByProductID(t *testing.T) {
	c := New(Cart)

	require.NoError(t, c.Add(product("p1", 1999.0), 1))
	require.NoError(t, c.Add(product("p1", 1999.0), 2))

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestCartAddClampsQuantityBelowOne(t *testing.T) {
	c := New(Cart)

	require.NoError(t, c.Add(product("p1", 100), 0))
	require.NoError(t, c.Add(product("p2", 100), -5))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestQuantityLookup(t *testing.T) {
	c := New(Cart)

	require.NoError(t, c.Add(product("p1", 100), 3))

	assert.Equal(t, 3, c.Quantity("p1"))
	assert.Equal(t, 0, c.Quantity("absent"))
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	c := New(Cart)

	require.NoError(t, c.Add(product("a", 1), 1))
	require.NoError(t, c.Add(product("b", 1), 1))
	require.NoError(t, c.Add(product("c", 1), 1))
	// Merging must not reorder.
	require.NoError(t, c.Add(product("b", 1), 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, "b", items[1].Product.ID)
	assert.Equal(t, "c", items[2].Product.ID)
}

func TestUpdateQuantitySetsAndRemoves(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 500), 2))

	assert.True(t, c.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, c.TotalQuantity())

	// Same value is not a change.
	assert.False(t, c.UpdateQuantity("p1", 5))

	// Zero and negative both remove.
	assert.True(t, c.UpdateQuantity("p1", 0))
	assert.Equal(t, 0, c.Count())

	require.NoError(t, c.Add(product("p2", 500), 1))
	assert.True(t, c.UpdateQuantity("p2", -1))
	assert.Equal(t, 0, c.Count())
}

func TestUpdateQuantityAbsentIDIsNoOp(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 500), 1))

	assert.False(t, c.UpdateQuantity("ghost", 3))
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 1, c.TotalQuantity())
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 500), 1))

	assert.False(t, c.Remove("ghost"))
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Remove("p1"))
	assert.Equal(t, 0, c.Count())
}

func TestTotalPriceRecomputed(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 19999), 1))
	require.NoError(t, c.Add(product("p2", 10000), 2))

	assert.InDelta(t, 39999.0, c.TotalPrice(), 0.001)

	c.UpdateQuantity("p2", 1)
	assert.InDelta(t, 29999.0, c.TotalPrice(), 0.001)
}

func TestTotalPriceIgnoresPriceOnRequestItems(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 0), 3)) // price on request
	require.NoError(t, c.Add(product("p2", 250), 2))

	assert.InDelta(t, 500.0, c.TotalPrice(), 0.001)
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	c := New(Wishlist)

	require.NoError(t, c.Add(product("p1", 100), 1))
	require.NoError(t, c.Add(product("p1", 100), 7))

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 1, c.TotalQuantity())
}

func TestWishlistQuantityFixedAtOne(t *testing.T) {
	c := New(Wishlist)
	require.NoError(t, c.Add(product("p1", 100), 9))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// Positive updates are meaningless for presence-only collections.
	assert.False(t, c.UpdateQuantity("p1", 4))
	assert.Equal(t, 1, c.Items()[0].Quantity)

	// Removal via quantity zero still works.
	assert.True(t, c.UpdateQuantity("p1", 0))
	assert.Equal(t, 0, c.Count())
}

func TestCompareRejectsFifthItem(t *testing.T) {
	c := New(Compare)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Add(product(id, 100), 1))
	}

	err := c.Add(product("e", 100), 1)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// Nothing changed: still the first four, in order.
	items := c.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, "d", items[3].Product.ID)
	assert.False(t, c.Contains("e"))
}

func TestCompareReAddingPresentItemAtCapacityIsNoOp(t *testing.T) {
	c := New(Compare)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Add(product(id, 100), 1))
	}

	// Present item does not hit the capacity check.
	require.NoError(t, c.Add(product("b", 100), 1))
	assert.Equal(t, 4, c.Count())
}

func TestClearEmptiesCollection(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 100), 2))
	require.NoError(t, c.Add(product("p2", 100), 1))

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0, c.TotalQuantity())
	assert.InDelta(t, 0.0, c.TotalPrice(), 0.001)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New(Cart)
	require.NoError(t, c.Add(product("p1", 100), 1))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestRestoreCollapsesDuplicatesAndClamps(t *testing.T) {
	c := New(Cart)
	c.Restore([]LineItem{
		{Product: product("p1", 100), Quantity: 2},
		{Product: product("p1", 100), Quantity: 3},
		{Product: product("p2", 100), Quantity: 0},
		{Product: domain.Product{}, Quantity: 1}, // no id, dropped
	})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestRestoreDropsOverflowAtCapacity(t *testing.T) {
	c := New(Compare)
	var persisted []LineItem
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		persisted = append(persisted, LineItem{Product: product(id, 100), Quantity: 1})
	}

	c.Restore(persisted)

	items := c.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, "d", items[3].Product.ID)
}
