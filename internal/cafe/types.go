package cafe

import "time"

// CartLine is one entry in the active cart: a snapshot of the menu item
// taken at add time, with a quantity and optional variant choices.
//
// The JSON field names fix the persisted layout of the "cafe_cart" key
// and must not change.
type CartLine struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Available   bool              `json:"available"`
	Quantity    int               `json:"quantity"`
	Variants    map[string]string `json:"variants"`
	CartID      string            `json:"cartId"`
}

// LineTotal returns price times quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is an immutable snapshot of a cart at the moment of submission.
// Only Status changes after placement, via the transition rules in
// status.go. Orders are never deleted.
//
// The JSON field names fix the persisted layout of the "cafe_orders" key
// and must not change.
type Order struct {
	ID        string     `json:"id"`
	TableID   int        `json:"tableId"`
	Items     []CartLine `json:"items"`
	Status    Status     `json:"status"`
	Timestamp string     `json:"timestamp"`
	Total     float64    `json:"total"`
}

// Time parses the order's placement timestamp.
func (o Order) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, o.Timestamp)
}

// cloneLines deep-copies cart lines, including each variants map, so a
// placed order cannot be altered through later cart mutation.
func cloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = l
		if l.Variants != nil {
			v := make(map[string]string, len(l.Variants))
			for k, val := range l.Variants {
				v[k] = val
			}
			out[i].Variants = v
		}
	}
	return out
}

// cloneOrders deep-copies orders, including their item snapshots.
func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o
		out[i].Items = cloneLines(o.Items)
	}
	return out
}
