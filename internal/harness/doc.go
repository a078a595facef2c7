// Package harness provides a conformance testing framework for the
// order and cart store.
//
// Scenarios are YAML files describing a flow of store operations with
// expected outcomes, plus assertions over the resulting trace and final
// state. Each scenario runs against a fresh in-memory database with a
// fixed clock and a fixed id sequence, so two runs of the same scenario
// produce byte-identical results.
//
// Determinism is what makes golden files workable: RunWithGolden
// serializes the trace and final state and compares them against a
// checked-in snapshot. Ids mint as "fixed-0001", "fixed-0002", ... in
// execution order, and scenarios reference cart lines and orders by
// those literal ids.
//
// A minimal scenario:
//
//	name: espresso_checkout
//	description: "One espresso reaches the kitchen"
//	flow:
//	  - op: cart.add
//	    args: {item: "1", qty: 2}
//	  - op: order.place
//	    args: {table: 4}
//	assertions:
//	  - type: final_state
//	    state: orders
//	    where: {id: fixed-0002}
//	    expect: {status: pending}
package harness
