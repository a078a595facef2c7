package harness

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", i+1, event.Op, event.Args, event.Outcome)
	}

	return buf.String()
}

// EvaluateAssertions checks all assertions against the result.
// Returns one message per failed assertion; empty means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result, assertion)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

// assertTraceContains checks if the trace contains an operation matching
// the specified op and args (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Op == assertion.Op && matchArgs(event.Args, assertion.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("op %s with args %v", assertion.Op, assertion.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if operations appear in the specified order.
// Operations don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		for _, expected := range assertion.Ops {
			if event.Op == expected && positions[expected] == 0 {
				positions[expected] = i + 1 // 1-indexed for readability
			}
		}
	}

	for _, op := range assertion.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", assertion.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Ops); i++ {
		prev, curr := assertion.Ops[i-1], assertion.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number
// of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("op %s appears %d times", assertion.Op, assertion.Count),
			Actual:   fmt.Sprintf("appears %d times", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalState checks expected field values against a state
// collection. For "cart" and "orders", Where selects entries and Expect
// must hold for every selected entry; selecting nothing is a failure.
// For "stats", Expect is checked against the aggregate summary.
func assertFinalState(result *Result, assertion Assertion) error {
	var entries []map[string]interface{}

	switch assertion.State {
	case StateCart:
		for _, line := range result.Cart {
			entries = append(entries, toMap(line))
		}
	case StateOrders:
		for _, order := range result.Orders {
			entries = append(entries, toMap(order))
		}
	case StateStats:
		entries = append(entries, toMap(result.Stats))
	}

	selected := 0
	for _, entry := range entries {
		if !matchArgs(entry, assertion.Where) {
			continue
		}
		selected++
		if !matchArgs(entry, assertion.Expect) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s entry matching %v has %v", assertion.State, assertion.Where, assertion.Expect),
				Actual:   fmt.Sprintf("entry %v", entry),
				Trace:    result.Trace,
			}
		}
	}

	if selected == 0 {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("%s entry matching %v", assertion.State, assertion.Where),
			Actual:   fmt.Sprintf("no entry matched (%d entries)", len(entries)),
			Trace:    result.Trace,
		}
	}

	return nil
}

// toMap converts a struct to its JSON object form so assertions compare
// against the same field names the persisted format uses.
func toMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// matchArgs checks whether actual contains every field of expected with
// an equal value (subset semantics). A nil or empty expected matches
// anything.
func matchArgs(actual map[string]interface{}, expected map[string]interface{}) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// valueEqual compares two YAML/JSON-parsed values, normalizing numeric
// types so a YAML int matches a JSON float.
func valueEqual(a, b interface{}) bool {
	if na, ok := toFloat(a); ok {
		nb, ok := toFloat(b)
		return ok && na == nb
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case map[string]interface{}:
		vb, ok := b.(map[string]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for k := range va {
			w, ok := vb[k]
			if !ok || !valueEqual(va[k], w) {
				return false
			}
		}
		return true
	case []interface{}:
		vb, ok := b.([]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !valueEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

// toFloat normalizes any numeric type to float64.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
