package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// InventoryItem is one product kept in stock.
type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
}

// StockValue is the value of the units on hand at the current unit price.
func (i InventoryItem) StockValue() float64 {
	return float64(i.Stock) * i.Price
}

// UnmarshalJSON accepts fractional and quoted stock counts so a single odd
// record does not invalidate a whole stored state. Fractions are truncated
// and anything unreadable counts as zero.
func (i *InventoryItem) UnmarshalJSON(data []byte) error {
	type plain InventoryItem
	aux := struct {
		*plain
		Stock json.RawMessage `json:"stock"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Stock = parseStock(aux.Stock)
	return nil
}

func parseStock(raw json.RawMessage) int {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
