package models

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	StatusInProgress OrderStatus = "in-progress"
	StatusShipped    OrderStatus = "shipped"
	StatusOnHold     OrderStatus = "on-hold"
)

// OrderFilterAll disables status filtering.
const OrderFilterAll = "all"

// statusCycle is the order in which the cycle action walks through statuses.
var statusCycle = []OrderStatus{StatusInProgress, StatusShipped, StatusOnHold}

// OrderStatuses returns the known statuses in cycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(statusCycle))
	copy(out, statusCycle)
	return out
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, candidate := range statusCycle {
		if candidate == s {
			return true
		}
	}
	return false
}

// Next returns the status following s, wrapping after the last one.
// Unknown values restart the cycle at the first status.
func (s OrderStatus) Next() OrderStatus {
	idx := -1
	for i, candidate := range statusCycle {
		if candidate == s {
			idx = i
			break
		}
	}
	return statusCycle[(idx+1)%len(statusCycle)]
}

// Label is the human readable form used by the status pill.
func (s OrderStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusShipped:
		return "Shipped"
	case StatusOnHold:
		return "On hold"
	default:
		return string(s)
	}
}

// Order is a customer or channel order being prepared.
type Order struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Owner    string      `json:"owner"`
	Deadline string      `json:"deadline"` // YYYY-MM-DD
	Status   OrderStatus `json:"status"`
}
