package harness

import (
	"github.com/beanline/beanline/internal/cafe"
)

// TraceEvent records one executed operation: what was invoked, with
// which arguments, and how it came out.
type TraceEvent struct {
	Op      string                 `json:"op"`
	Args    map[string]interface{} `json:"args,omitempty"`
	Outcome string                 `json:"outcome"` // "ok" or a failure code
	Result  map[string]interface{} `json:"result,omitempty"`
}

// StatsSummary is the aggregate view captured in the final state.
type StatsSummary struct {
	CartItems       int     `json:"cartItems"`
	CartSubtotal    float64 `json:"cartSubtotal"`
	Orders          int     `json:"orders"`
	Active          int     `json:"active"`
	Revenue         float64 `json:"revenue"`
	RealizedRevenue float64 `json:"realizedRevenue"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expect clause and assertion
	// held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final state after the flow.
	Cart   []cafe.CartLine `json:"cart"`
	Orders []cafe.Order    `json:"orders"`
	Stats  StatsSummary    `json:"stats"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addTrace appends an event for an executed operation.
func (r *Result) addTrace(op string, args map[string]interface{}, outcome string, result map[string]interface{}) {
	r.Trace = append(r.Trace, TraceEvent{
		Op:      op,
		Args:    args,
		Outcome: outcome,
		Result:  result,
	})
}
