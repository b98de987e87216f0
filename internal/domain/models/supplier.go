package models

// Supplier is a vendor the company buys from.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Items   string `json:"items"`
}
