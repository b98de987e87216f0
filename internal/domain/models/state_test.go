package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusNextCycles(t *testing.T) {
	status := StatusInProgress

	status = status.Next()
	assert.Equal(t, StatusShipped, status)
	status = status.Next()
	assert.Equal(t, StatusOnHold, status)
	status = status.Next()
	assert.Equal(t, StatusInProgress, status)
}

func TestOrderStatusNextUnknownRestarts(t *testing.T) {
	assert.Equal(t, StatusInProgress, OrderStatus("archived").Next())
	assert.False(t, OrderStatus("archived").Valid())
	assert.True(t, StatusOnHold.Valid())
}

func TestFilterOrders(t *testing.T) {
	state := State{Orders: []Order{
		{ID: "a", Status: StatusInProgress},
		{ID: "b", Status: StatusOnHold},
		{ID: "c", Status: StatusInProgress},
	}}

	matching := state.FilterOrders(string(StatusInProgress))
	require.Len(t, matching, 2)
	assert.Equal(t, "a", matching[0].ID)
	assert.Equal(t, "c", matching[1].ID)

	assert.Len(t, state.FilterOrders(OrderFilterAll), 3)
	assert.Empty(t, state.FilterOrders(string(StatusShipped)))
	assert.Len(t, state.Orders, 3)
}

func TestPrependItemPlacesAtFront(t *testing.T) {
	state := State{Inventory: []InventoryItem{{ID: "old-1"}, {ID: "old-2"}}}

	state.PrependItem(InventoryItem{ID: "new"})

	require.Len(t, state.Inventory, 3)
	assert.Equal(t, []string{"new", "old-1", "old-2"}, itemIDs(state.Inventory))
}

func TestRemoveKeepsRelativeOrder(t *testing.T) {
	state := State{
		Inventory: []InventoryItem{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		Orders:    []Order{{ID: "o1"}, {ID: "o2"}},
		Suppliers: []Supplier{{ID: "s1", Name: "Green Farm"}, {ID: "s2"}},
	}

	removed, ok := state.RemoveItem("2")
	require.True(t, ok)
	assert.Equal(t, "2", removed.ID)
	assert.Equal(t, []string{"1", "3"}, itemIDs(state.Inventory))

	_, ok = state.RemoveOrder("missing")
	assert.False(t, ok)
	assert.Len(t, state.Orders, 2)

	supplier, ok := state.RemoveSupplier("s1")
	require.True(t, ok)
	assert.Equal(t, "Green Farm", supplier.Name)
	require.Len(t, state.Suppliers, 1)
	assert.Equal(t, "s2", state.Suppliers[0].ID)
}

func TestFindReturnsLiveRecord(t *testing.T) {
	state := State{Inventory: []InventoryItem{{ID: "1", Stock: 4}}}

	item := state.FindItem("1")
	require.NotNil(t, item)
	item.Stock = 9

	assert.Equal(t, 9, state.Inventory[0].Stock)
	assert.Nil(t, state.FindOrder("1"))
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	state := State{Inventory: []InventoryItem{{ID: "1", Stock: 1}}}

	clone := state.Clone()
	clone.Inventory[0].Stock = 100

	assert.Equal(t, 1, state.Inventory[0].Stock)
}

func TestStockValue(t *testing.T) {
	item := InventoryItem{Stock: 240, Price: 1800}
	assert.InDelta(t, 432000.0, item.StockValue(), 0.001)
}

func itemIDs(items []InventoryItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestInventoryItemDecodesStockLeniently(t *testing.T) {
	cases := map[string]int{
		`12`:     12,
		`1.5`:    1,
		`-2.9`:   -2,
		`"40"`:   40,
		`"7.25"`: 7,
		`null`:   0,
		`"lots"`: 0,
		`1e300`:  math.MaxInt,
		`-1e300`: math.MinInt,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			var item InventoryItem
			require.NoError(t, json.Unmarshal([]byte(`{"id":"a","name":"Tofu","stock":`+raw+`,"price":1300}`), &item))
			assert.Equal(t, want, item.Stock)
			assert.Equal(t, "Tofu", item.Name)
			assert.Equal(t, 1300.0, item.Price)
		})
	}
}

func TestInventoryItemMissingStockIsZero(t *testing.T) {
	var item InventoryItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","name":"Tofu"}`), &item))
	assert.Zero(t, item.Stock)
	assert.Equal(t, "a", item.ID)
}
