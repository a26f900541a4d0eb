package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	productID := uuid.New()

	c.AddItem(productID, "STAINLESS PLATE 240", 48000, "plate.jpg")
	c.AddItem(productID, "STAINLESS PLATE 240", 48000, "plate.jpg")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(96000), c.Total())
	assert.Equal(t, 2, c.Count())
}

func TestAddItemAppendsNewLines(t *testing.T) {
	c := New()

	c.AddItem(uuid.New(), "PRECISION FORK", 18000, "fork.jpg")
	c.AddItem(uuid.New(), "MINIMAL STEEL CUP", 24000, "cup.jpg")

	assert.Len(t, c.Items(), 2)
	assert.Equal(t, int64(42000), c.Total())
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	productID := uuid.New()
	c.AddItem(productID, "METAL TRAY LARGE", 85000, "tray.jpg")

	c.UpdateQuantity(productID, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(255000), c.Total())
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	c := New()
	productID := uuid.New()
	c.AddItem(productID, "INDUSTRIAL SPOON", 18000, "spoon.jpg")

	c.UpdateQuantity(productID, 0)

	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityAbsentProductIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(uuid.New(), "PRECISION KNIFE", 22000, "knife.jpg")

	c.UpdateQuantity(uuid.New(), 5)

	require.Len(t, c.Items(), 1)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	keep := uuid.New()
	drop := uuid.New()
	c.AddItem(keep, "STEEL BREAD TRAY", 64000, "bread.jpg")
	c.AddItem(drop, "METAL BASE STAND", 120000, "stand.jpg")

	c.RemoveItem(drop)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep, items[0].ProductID)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(uuid.New(), "MINIMAL CARAFE METAL", 92000, "carafe.jpg")

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.Count())
}

func TestJSONRoundTrip(t *testing.T) {
	c := New()
	productID := uuid.New()
	c.AddItem(productID, "BRUSHED METAL BOWL", 36000, "bowl.jpg")
	c.UpdateQuantity(productID, 2)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	restored, err := Load(data)
	require.NoError(t, err)

	items := restored.Items()
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(72000), restored.Total())
}

func TestLoadCorruptPayloadYieldsEmptyCart(t *testing.T) {
	c, err := Load([]byte("{not json"))

	require.Error(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(uuid.New(), "STAINLESS PLATE 180", 32000, "plate.jpg")

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
