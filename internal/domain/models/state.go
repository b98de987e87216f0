package models

// State is the full set of collections persisted as one document.
type State struct {
	Inventory []InventoryItem `json:"inventory"`
	Orders    []Order         `json:"orders"`
	Suppliers []Supplier      `json:"suppliers"`
}

// Clone returns a copy that shares no slices with s.
func (s *State) Clone() State {
	if s == nil {
		return State{}
	}
	return State{
		Inventory: append([]InventoryItem{}, s.Inventory...),
		Orders:    append([]Order{}, s.Orders...),
		Suppliers: append([]Supplier{}, s.Suppliers...),
	}
}

// PrependItem inserts item at the front of the inventory.
func (s *State) PrependItem(item InventoryItem) {
	s.Inventory = append([]InventoryItem{item}, s.Inventory...)
}

// PrependOrder inserts order at the front of the orders.
func (s *State) PrependOrder(order Order) {
	s.Orders = append([]Order{order}, s.Orders...)
}

// PrependSupplier inserts supplier at the front of the suppliers.
func (s *State) PrependSupplier(supplier Supplier) {
	s.Suppliers = append([]Supplier{supplier}, s.Suppliers...)
}

// FindItem returns a pointer into the inventory so callers can mutate in place.
func (s *State) FindItem(id string) *InventoryItem {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return &s.Inventory[i]
		}
	}
	return nil
}

// FindOrder returns a pointer into the orders.
func (s *State) FindOrder(id string) *Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

// FindSupplier returns a pointer into the suppliers.
func (s *State) FindSupplier(id string) *Supplier {
	for i := range s.Suppliers {
		if s.Suppliers[i].ID == id {
			return &s.Suppliers[i]
		}
	}
	return nil
}

// RemoveItem drops the item with id, keeping the order of the rest.
func (s *State) RemoveItem(id string) (InventoryItem, bool) {
	var removed InventoryItem
	found := false
	kept := s.Inventory[:0:0]
	for _, item := range s.Inventory {
		if item.ID == id && !found {
			removed, found = item, true
			continue
		}
		kept = append(kept, item)
	}
	s.Inventory = kept
	return removed, found
}

// RemoveOrder drops the order with id, keeping the order of the rest.
func (s *State) RemoveOrder(id string) (Order, bool) {
	var removed Order
	found := false
	kept := s.Orders[:0:0]
	for _, order := range s.Orders {
		if order.ID == id && !found {
			removed, found = order, true
			continue
		}
		kept = append(kept, order)
	}
	s.Orders = kept
	return removed, found
}

// RemoveSupplier drops the supplier with id, keeping the order of the rest.
func (s *State) RemoveSupplier(id string) (Supplier, bool) {
	var removed Supplier
	found := false
	kept := s.Suppliers[:0:0]
	for _, supplier := range s.Suppliers {
		if supplier.ID == id && !found {
			removed, found = supplier, true
			continue
		}
		kept = append(kept, supplier)
	}
	s.Suppliers = kept
	return removed, found
}

// FilterOrders returns the orders whose status equals filter, or all of them
// for OrderFilterAll and the empty string. The state is not modified.
func (s *State) FilterOrders(filter string) []Order {
	if filter == "" || filter == OrderFilterAll {
		return append([]Order{}, s.Orders...)
	}
	out := make([]Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		if string(order.Status) == filter {
			out = append(out, order)
		}
	}
	return out
}
