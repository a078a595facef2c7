// Package cafe implements the order and cart store: the single source of
// truth for menu, cart, and order state.
//
// The store owns three pieces of state:
//
//   - menu: the catalog, seeded at construction and editable in memory
//   - cart: the active, not-yet-submitted order lines
//   - orders: placed orders, newest first, tracked through a preparation
//     lifecycle (pending -> preparing -> ready -> completed, with
//     cancellation from any non-terminal state)
//
// Cart and orders are durable: every successful mutation serializes the
// full sequence as JSON to its storage key ("cafe_cart" / "cafe_orders").
// On construction the store loads both keys; an absent key or a value
// that fails to parse falls back to an empty sequence without error.
// Write failures are returned to the caller.
//
// # Concurrency
//
// The store is single-writer by design: all mutations are synchronous
// read-modify-write calls from one logical caller. Methods are not safe
// for concurrent use.
package cafe
