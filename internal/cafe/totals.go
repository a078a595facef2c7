package cafe

import "time"

// TaxRate is the fixed tax applied to the cart subtotal on the customer
// receipt.
const TaxRate = 0.08

// ItemCount returns the total quantity across all cart lines.
func ItemCount(cart []CartLine) int {
	n := 0
	for _, l := range cart {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of price times quantity across cart lines.
func Subtotal(cart []CartLine) float64 {
	sum := 0.0
	for _, l := range cart {
		sum += l.LineTotal()
	}
	return sum
}

// Tax returns the tax on the cart at the fixed rate.
func Tax(cart []CartLine) float64 {
	return Subtotal(cart) * TaxRate
}

// GrandTotal returns subtotal plus tax.
func GrandTotal(cart []CartLine) float64 {
	return Subtotal(cart) + Tax(cart)
}

// CountByStatus returns the number of orders in each status.
// Statuses with no orders are absent from the map.
func CountByStatus(orders []Order) map[Status]int {
	counts := make(map[Status]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// ActiveOrders returns the orders still in flight (not completed, not
// cancelled), preserving newest-first order.
func ActiveOrders(orders []Order) []Order {
	active := []Order{}
	for _, o := range orders {
		if o.Status.Active() {
			active = append(active, o)
		}
	}
	return active
}

// ByStatus returns the orders currently in the given status, preserving
// newest-first order.
func ByStatus(orders []Order, status Status) []Order {
	matched := []Order{}
	for _, o := range orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched
}

// Revenue sums order totals across all orders regardless of status,
// matching the dashboard's historical metric. Cancelled and in-flight
// orders are included; use RealizedRevenue for completed orders only.
func Revenue(orders []Order) float64 {
	sum := 0.0
	for _, o := range orders {
		sum += o.Total
	}
	return sum
}

// RealizedRevenue sums totals over completed orders only.
func RealizedRevenue(orders []Order) float64 {
	sum := 0.0
	for _, o := range orders {
		if o.Status == StatusCompleted {
			sum += o.Total
		}
	}
	return sum
}

// Elapsed returns how long ago the order was placed, relative to now.
// Returns 0 for an unparseable timestamp.
func Elapsed(o Order, now time.Time) time.Duration {
	placed, err := o.Time()
	if err != nil {
		return 0
	}
	d := now.Sub(placed)
	if d < 0 {
		return 0
	}
	return d
}
