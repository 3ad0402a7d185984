package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

func product(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:    models.ID(id),
		Name:  "Product " + id,
		Price: money.FromFloat(price),
		Stock: stock,
	}
}

// checkInvariant asserts the ledger's standing rules: unique product ids
// and quantities within [1, stock].
func checkInvariant(t *testing.T, l *Ledger) {
	t.Helper()
	seen := map[models.ID]bool{}
	for _, line := range l.Lines() {
		assert.False(t, seen[line.Product.ID], "duplicate line for %s", line.Product.ID)
		seen[line.Product.ID] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
		assert.LessOrEqual(t, line.Quantity, line.Product.Stock)
	}
}

func TestAddSameProductMergesLines(t *testing.T) {
	l := New()
	p := product("p1", 30, 5)

	l.Add(p)
	l.Add(p)
	l.Add(p)

	require.Equal(t, 1, l.Len())
	assert.Equal(t, 3, l.Lines()[0].Quantity)
	assert.Equal(t, 3, l.ItemCount())
	assert.True(t, l.Subtotal().Equal(money.FromFloat(90)))
	checkInvariant(t, l)
}

func TestAddStopsAtStock(t *testing.T) {
	l := New()
	p := product("p1", 10, 2)

	for i := 0; i < 5; i++ {
		l.Add(p)
	}

	assert.Equal(t, 2, l.ItemCount(), "silently refuses to add past stock")
	checkInvariant(t, l)
}

func TestAddZeroStockIsNoOp(t *testing.T) {
	l := New()
	l.Add(product("p1", 10, 0))
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Subtotal().IsZero())
}

func TestSetQuantity(t *testing.T) {
	l := New()
	l.Add(product("p1", 10, 4))

	l.SetQuantity("p1", 3)
	assert.Equal(t, 3, l.ItemCount())

	l.SetQuantity("p1", 99)
	assert.Equal(t, 4, l.ItemCount(), "clamped to stock")
	checkInvariant(t, l)

	l.SetQuantity("missing", 2)
	assert.Equal(t, 4, l.ItemCount(), "unknown id is a no-op")

	l.SetQuantity("p1", 0)
	assert.Equal(t, 0, l.Len(), "zero removes the line")
	l.SetQuantity("p1", -1)
	assert.Equal(t, 0, l.Len())
}

func TestRemoveAndClear(t *testing.T) {
	l := New()
	l.Add(product("p1", 10, 4))
	l.Add(product("p2", 20, 4))

	l.Remove("p1")
	require.Equal(t, 1, l.Len())
	assert.Equal(t, models.ID("p2"), l.Lines()[0].Product.ID)

	l.Remove("p1") // already gone
	assert.Equal(t, 1, l.Len())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.ItemCount())
}

func TestSubtotalAcrossLines(t *testing.T) {
	l := New()
	l.Add(product("p1", 12.50, 9))
	l.Add(product("p1", 12.50, 9))
	l.Add(product("p2", 5.25, 9))

	assert.True(t, l.Subtotal().Equal(money.FromFloat(30.25)))
	assert.Equal(t, 3, l.ItemCount())
	assert.Equal(t, 2, l.Len())
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := New()
	l.Add(product("p1", 30, 5))
	l.Add(product("p1", 30, 5))
	l.Add(product("p2", 8, 2))

	snap, err := l.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(snap)
	require.NoError(t, err)
	require.Equal(t, l.Len(), restored.Len())
	for i, line := range restored.Lines() {
		want := l.Lines()[i]
		assert.Equal(t, want.Product.ID, line.Product.ID)
		assert.Equal(t, want.Quantity, line.Quantity)
		assert.True(t, line.Product.Price.Equal(want.Product.Price))
	}
	assert.True(t, restored.Subtotal().Equal(l.Subtotal()))
}

func TestRestoreCorruptSnapshot(t *testing.T) {
	restored, err := Restore([]byte("{not json"))
	assert.Error(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 0, restored.Len(), "corrupt data falls back to an empty cart")

	restored, err = Restore(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
}

func TestEmptySnapshotIsJSONArray(t *testing.T) {
	snap, err := New().Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(snap))
}
