package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_SetQuantity(t *testing.T) {
	item := &Item{Quantity: 5, MinQuantity: 3}
	actor := uint(9)
	at := time.Now()

	require.NoError(t, item.SetQuantity(0, &actor, at))
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, &actor, item.LastUpdatedBy)
	assert.True(t, item.IsMissing())
	assert.True(t, item.IsLowStock())

	assert.ErrorIs(t, item.SetQuantity(-1, nil, at), ErrInvalidQuantity)
	assert.Equal(t, 0, item.Quantity)
}

func TestItem_ApplyChanges(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("空修改", func(t *testing.T) {
		assert.True(t, ItemChanges{}.IsEmpty())
		assert.False(t, ItemChanges{MinQuantity: intPtr(1)}.IsEmpty())
	})

	t.Run("部分字段", func(t *testing.T) {
		item := &Item{Name: "Caffè", Unit: "pz", MinQuantity: 1, Quantity: 4}
		require.NoError(t, item.ApplyChanges(ItemChanges{Name: strPtr(" Caffè macinato "), MinQuantity: intPtr(5)}))
		assert.Equal(t, "Caffè macinato", item.Name)
		assert.Equal(t, 5, item.MinQuantity)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("空单位回退默认值", func(t *testing.T) {
		item := &Item{Name: "Caffè", Unit: "kg"}
		require.NoError(t, item.ApplyChanges(ItemChanges{Unit: strPtr("")}))
		assert.Equal(t, DefaultUnit, item.Unit)
	})

	t.Run("非法值", func(t *testing.T) {
		item := &Item{Name: "Caffè"}
		assert.ErrorIs(t, item.ApplyChanges(ItemChanges{Name: strPtr("  ")}), ErrInvalidName)
		assert.ErrorIs(t, item.ApplyChanges(ItemChanges{MinQuantity: intPtr(-2)}), ErrInvalidQuantity)
		assert.Equal(t, "Caffè", item.Name)
	})
}
