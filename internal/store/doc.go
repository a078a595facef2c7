// Package store provides SQLite-backed durable key-value storage for
// beanline state.
//
// The store holds opaque string values under string keys. Callers own
// serialization; the cafe package writes JSON blobs under two keys
// ("cafe_cart" and "cafe_orders") and treats the medium as a synchronous
// get/set surface.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Writes are upserts: setting an existing key replaces its value in place.
// Reads distinguish "absent" from "empty string" via an explicit found flag.
package store
