package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/beanline/beanline/internal/cafe"
	"github.com/beanline/beanline/internal/menu"
)

// Text rendering for the customer and admin surfaces. These functions
// are pure over their inputs (the clock is a parameter) so golden tests
// can pin their exact output.

// money formats a currency amount.
func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// shortID returns the last four characters of an id, the way the board
// labels orders.
func shortID(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

// formatAge renders an elapsed duration compactly: "42s", "5m12s",
// "2h05m".
func formatAge(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

// formatVariants renders a variant map as "k=v, k=v" with sorted keys.
// Returns "" for no variants.
func formatVariants(variants map[string]string) string {
	if len(variants) == 0 {
		return ""
	}
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + variants[k]
	}
	return strings.Join(parts, ", ")
}

// renderMenu writes the catalog listing.
func renderMenu(w io.Writer, catalog menu.Catalog) {
	for ci, cat := range catalog {
		if ci > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", cat.Name)
		for _, item := range cat.Items {
			marker := ""
			if !item.Available {
				marker = "  (unavailable)"
			}
			fmt.Fprintf(w, "  [%s] %s  %s%s\n", item.ID, item.Name, money(item.Price), marker)
			if item.Description != "" {
				fmt.Fprintf(w, "      %s\n", item.Description)
			}
		}
	}
}

// renderCart writes the cart contents and totals.
func renderCart(w io.Writer, cart []cafe.CartLine) {
	if len(cart) == 0 {
		fmt.Fprintln(w, "Cart is empty")
		return
	}

	fmt.Fprintf(w, "Cart (%d items)\n", cafe.ItemCount(cart))
	for _, line := range cart {
		variants := formatVariants(line.Variants)
		if variants != "" {
			variants = "  " + variants
		}
		fmt.Fprintf(w, "  %dx %s  %s%s  [%s]\n", line.Quantity, line.Name, money(line.LineTotal()), variants, line.CartID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal  %s\n", money(cafe.Subtotal(cart)))
	fmt.Fprintf(w, "Tax (8%%)  %s\n", money(cafe.Tax(cart)))
	fmt.Fprintf(w, "Total     %s\n", money(cafe.GrandTotal(cart)))
}

// renderReceipt writes the confirmation for a just-placed order.
func renderReceipt(w io.Writer, order cafe.Order) {
	fmt.Fprintf(w, "Order placed for table %d\n", order.TableID)
	for _, line := range order.Items {
		variants := formatVariants(line.Variants)
		if variants != "" {
			variants = "  " + variants
		}
		fmt.Fprintf(w, "  %dx %s  %s%s\n", line.Quantity, line.Name, money(line.LineTotal()), variants)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal  %s\n", money(order.Total))
	fmt.Fprintf(w, "Tax (8%%)  %s\n", money(order.Total*cafe.TaxRate))
	fmt.Fprintf(w, "Total     %s\n", money(order.Total*(1+cafe.TaxRate)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Order id: %s\n", order.ID)
}

// renderOrders writes the order history listing, newest first.
func renderOrders(w io.Writer, orders []cafe.Order, now time.Time) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(w, "%s  %-9s  table %-3d  %2d items  %8s  %s ago\n",
			o.ID, o.Status, o.TableID, cafe.ItemCount(o.Items), money(o.Total), formatAge(cafe.Elapsed(o, now)))
	}
}

// board columns in display order, one per active status.
var boardColumns = []struct {
	status cafe.Status
	title  string
}{
	{cafe.StatusPending, "New Orders"},
	{cafe.StatusPreparing, "In Progress"},
	{cafe.StatusReady, "Ready to Serve"},
}

// renderKitchen writes the kitchen display board: one section per
// in-flight status, each order with table, short id, placement time,
// age, items, and the single legal next step.
func renderKitchen(w io.Writer, orders []cafe.Order, now time.Time) {
	active := cafe.ActiveOrders(orders)
	fmt.Fprintf(w, "Kitchen Display  |  %d active\n", len(active))

	for _, col := range boardColumns {
		matched := cafe.ByStatus(active, col.status)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (%d)\n", col.title, len(matched))
		if len(matched) == 0 {
			fmt.Fprintln(w, "  no orders")
			continue
		}
		for _, o := range matched {
			placed := "??:??"
			if ts, err := o.Time(); err == nil {
				placed = ts.UTC().Format("15:04")
			}
			fmt.Fprintf(w, "  Table %d  #%s  %s  %s\n", o.TableID, shortID(o.ID), placed, formatAge(cafe.Elapsed(o, now)))
			for _, line := range o.Items {
				fmt.Fprintf(w, "    %dx %s\n", line.Quantity, line.Name)
			}
			if next, ok := o.Status.Next(); ok {
				fmt.Fprintf(w, "    next: %s\n", next)
			}
		}
	}
}

// statsOrder fixes the status listing order for renderStats.
var statsOrder = []cafe.Status{
	cafe.StatusPending,
	cafe.StatusPreparing,
	cafe.StatusReady,
	cafe.StatusCompleted,
	cafe.StatusCancelled,
}

// renderStats writes per-status counts and revenue.
func renderStats(w io.Writer, orders []cafe.Order) {
	counts := cafe.CountByStatus(orders)
	fmt.Fprintf(w, "Orders: %d total, %d active\n", len(orders), len(cafe.ActiveOrders(orders)))
	for _, s := range statsOrder {
		fmt.Fprintf(w, "  %-9s  %d\n", s, counts[s])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Revenue (all orders)  %s\n", money(cafe.Revenue(orders)))
	fmt.Fprintf(w, "Realized (completed)  %s\n", money(cafe.RealizedRevenue(orders)))
}
