package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/beanline/beanline/internal/cafe"
	"github.com/beanline/beanline/internal/store"
)

// fixedIDCount is how many deterministic ids a scenario run can mint.
// Scenarios reference lines and orders by these literal ids.
const fixedIDCount = 64

// baseTime is the fixed clock's starting instant. Each order placement
// advances it by thirty seconds.
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Harness executes a scenario's flow against a fresh store.
type Harness struct {
	cafe   *cafe.Cafe
	logger *slog.Logger
}

// operation executes one flow step against the store and returns the
// result payload. Domain failures come back as *cafe.OpError.
type operation func(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error)

// operations maps op names to their executors. scenario.go validates
// op names against this table at load time.
var operations = map[string]operation{
	"cart.add":      opCartAdd,
	"cart.remove":   opCartRemove,
	"cart.quantity": opCartQuantity,
	"order.place":   opOrderPlace,
	"order.advance": opOrderAdvance,
	"order.cancel":  opOrderCancel,
	"order.status":  opOrderStatus,
	"menu.set":      opMenuSet,
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with a
// fixed clock and a fixed id sequence ("fixed-0001", "fixed-0002", ...)
// so results are reproducible and comparable against golden files.
//
// Execution flow:
//  1. Create a fresh in-memory database
//  2. Execute flow steps, validating expect clauses
//  3. Capture final state (cart, orders, aggregates)
//  4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ids := make([]string, fixedIDCount)
	for i := range ids {
		ids[i] = fmt.Sprintf("fixed-%04d", i+1)
	}

	tick := 0
	clock := func() time.Time {
		t := baseTime.Add(time.Duration(tick) * 30 * time.Second)
		tick++
		return t
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	h := &Harness{
		cafe: cafe.New(ctx, st,
			cafe.WithIDGenerator(cafe.NewFixedGenerator(ids...)),
			cafe.WithClock(clock),
			cafe.WithLogger(logger),
		),
		logger: logger,
	}

	result := NewResult()
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, err
	}

	result.Cart = h.cafe.Cart()
	result.Orders = h.cafe.Orders()
	result.Stats = StatsSummary{
		CartItems:       cafe.ItemCount(result.Cart),
		CartSubtotal:    cafe.Subtotal(result.Cart),
		Orders:          len(result.Orders),
		Active:          len(cafe.ActiveOrders(result.Orders)),
		Revenue:         cafe.Revenue(result.Orders),
		RealizedRevenue: cafe.RealizedRevenue(result.Orders),
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeFlow runs all flow steps and validates expect clauses.
//
// Domain failures (OpError) become trace outcomes and are checked
// against the step's expect clause; any other error aborts the run.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		op := operations[step.Op]

		payload, err := op(ctx, h, stepArgs(step.Args))
		outcome := "ok"
		if err != nil {
			var oe *cafe.OpError
			if !errors.As(err, &oe) {
				return fmt.Errorf("flow step %d (%s): %w", i, step.Op, err)
			}
			outcome = string(oe.Code)
			payload = nil
		}

		result.addTrace(step.Op, step.Args, outcome, payload)

		// Validate against the expect clause. No clause means the step
		// must succeed.
		expectedOutcome := "ok"
		if step.Expect != nil && step.Expect.Error != "" {
			expectedOutcome = step.Expect.Error
		}
		if outcome != expectedOutcome {
			result.AddError(fmt.Sprintf(
				"flow step %d (%s): expected outcome %s, got %s", i, step.Op, expectedOutcome, outcome))
			continue
		}
		if step.Expect != nil && step.Expect.Result != nil {
			if !matchArgs(payload, step.Expect.Result) {
				result.AddError(fmt.Sprintf(
					"flow step %d (%s): result %v does not match expected %v",
					i, step.Op, payload, step.Expect.Result))
			}
		}

		h.logger.Info("flow step completed", "step", i, "op", step.Op, "outcome", outcome)
	}
	return nil
}

// stepArgs wraps YAML-parsed step arguments with typed accessors.
type stepArgs map[string]interface{}

func (a stepArgs) str(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("arg %q is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q must be a string, got %T", key, v)
	}
	return s, nil
}

func (a stepArgs) num(key string, fallback int) (int, error) {
	v, ok := a[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("arg %q must be a number, got %T", key, v)
	}
}

func (a stepArgs) variants() (map[string]string, error) {
	v, ok := a["variants"]
	if !ok {
		return nil, nil
	}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("arg \"variants\" must be a map, got %T", v)
	}
	variants := make(map[string]string, len(raw))
	for k, val := range raw {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("variant %q must be a string, got %T", k, val)
		}
		variants[k] = s
	}
	return variants, nil
}

func opCartAdd(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	itemID, err := args.str("item")
	if err != nil {
		return nil, err
	}
	qty, err := args.num("qty", 1)
	if err != nil {
		return nil, err
	}
	variants, err := args.variants()
	if err != nil {
		return nil, err
	}

	item, ok := h.cafe.Menu().Find(itemID)
	if !ok {
		return nil, &cafe.OpError{
			Code:    cafe.ErrCodeNotFound,
			Message: "menu item " + itemID + " not found",
			Op:      "cart.add",
			ID:      itemID,
		}
	}

	line, err := h.cafe.AddToCart(ctx, item, qty, variants)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"cartId":   line.CartID,
		"quantity": line.Quantity,
	}, nil
}

func opCartRemove(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	cartID, err := args.str("line")
	if err != nil {
		return nil, err
	}
	if err := h.cafe.RemoveFromCart(ctx, cartID); err != nil {
		return nil, err
	}
	return nil, nil
}

func opCartQuantity(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	cartID, err := args.str("line")
	if err != nil {
		return nil, err
	}
	delta, err := args.num("delta", 0)
	if err != nil {
		return nil, err
	}
	line, err := h.cafe.UpdateCartQuantity(ctx, cartID, delta)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"quantity": line.Quantity,
	}, nil
}

func opOrderPlace(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	table, err := args.num("table", 1)
	if err != nil {
		return nil, err
	}
	order, err := h.cafe.PlaceOrder(ctx, table)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"order": order.ID,
		"total": order.Total,
	}, nil
}

func opOrderAdvance(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	orderID, err := args.str("order")
	if err != nil {
		return nil, err
	}
	status, err := h.cafe.AdvanceOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": string(status),
	}, nil
}

func opOrderCancel(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	orderID, err := args.str("order")
	if err != nil {
		return nil, err
	}
	if err := h.cafe.CancelOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return nil, nil
}

func opOrderStatus(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	orderID, err := args.str("order")
	if err != nil {
		return nil, err
	}
	raw, err := args.str("status")
	if err != nil {
		return nil, err
	}
	status, err := cafe.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	if err := h.cafe.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return nil, nil
}

func opMenuSet(ctx context.Context, h *Harness, args stepArgs) (map[string]interface{}, error) {
	categoryID, err := args.str("category")
	if err != nil {
		return nil, err
	}
	itemID, err := args.str("item")
	if err != nil {
		return nil, err
	}

	current, ok := h.cafe.Menu().Find(itemID)
	if !ok {
		return nil, &cafe.OpError{
			Code:    cafe.ErrCodeNotFound,
			Message: "menu item " + itemID + " not found",
			Op:      "menu.set",
			ID:      itemID,
		}
	}

	updated := current
	if v, ok := args["name"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("arg \"name\" must be a string, got %T", v)
		}
		updated.Name = s
	}
	if _, ok := args["price"]; ok {
		switch n := args["price"].(type) {
		case int:
			updated.Price = float64(n)
		case float64:
			updated.Price = n
		default:
			return nil, fmt.Errorf("arg \"price\" must be a number, got %T", args["price"])
		}
	}
	if v, ok := args["available"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("arg \"available\" must be a bool, got %T", v)
		}
		updated.Available = b
	}

	if err := h.cafe.UpdateMenuItem(categoryID, updated); err != nil {
		return nil, err
	}
	return nil, nil
}
