package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

func TestPartitionItems(t *testing.T) {
	items := []*inventory.Item{
		{ID: 1, Quantity: 10, MinQuantity: 3},
		{ID: 2, Quantity: 3, MinQuantity: 3},
		{ID: 3, Quantity: 0, MinQuantity: 3},
		{ID: 4, Quantity: 1, MinQuantity: 2},
		{ID: 5, Quantity: 0, MinQuantity: 0},
		{ID: 6, Quantity: 1, MinQuantity: 0},
	}

	p := PartitionItems(items)

	assert.Equal(t, []uint{2, 4}, ids(p.Low))
	assert.Equal(t, []uint{3, 5}, ids(p.Missing))
	assert.Equal(t, []uint{1, 6}, ids(p.OK))
	assert.Equal(t, len(items), p.Total())
}

func TestPartitionEmpty(t *testing.T) {
	p := PartitionItems(nil)
	assert.NotNil(t, p.Low)
	assert.Equal(t, 0, p.Total())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusOK, StatusOf(&inventory.Item{Quantity: 4, MinQuantity: 3}))
	assert.Equal(t, StatusLow, StatusOf(&inventory.Item{Quantity: 3, MinQuantity: 3}))
	assert.Equal(t, StatusMissing, StatusOf(&inventory.Item{Quantity: 0, MinQuantity: 3}))
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
	assert.Equal(t, 50.0, CompletionRate(1, 2))
	assert.Equal(t, 100.0, CompletionRate(3, 3))
	assert.InDelta(t, 33.333, CompletionRate(1, 3), 0.001)
}

func ids(items []*inventory.Item) []uint {
	out := make([]uint, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
