package cafe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/beanline/beanline/internal/menu"
)

// Storage keys for the two persisted sequences.
const (
	CartKey   = "cafe_cart"
	OrdersKey = "cafe_orders"
)

// Storage is the durable key-value medium the store persists into.
// Implemented by *store.Store; tests may substitute fakes.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Cafe is the order and cart store.
//
// Construct with New, which loads persisted state. All mutating methods
// write the affected sequence back to storage before returning; a
// storage write failure is returned to the caller while the in-memory
// mutation stands, and the next successful write re-persists the full
// sequence.
type Cafe struct {
	storage Storage
	logger  *slog.Logger
	ids     IDGenerator
	now     func() time.Time

	menu   menu.Catalog
	cart   []CartLine
	orders []Order
}

// Option configures a Cafe at construction.
type Option func(*Cafe)

// WithCatalog seeds the menu from the given catalog instead of the
// built-in default.
func WithCatalog(c menu.Catalog) Option {
	return func(cafe *Cafe) { cafe.menu = c }
}

// WithIDGenerator substitutes the id generator. Tests use FixedGenerator
// for deterministic ids.
func WithIDGenerator(g IDGenerator) Option {
	return func(cafe *Cafe) { cafe.ids = g }
}

// WithClock substitutes the time source used for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(cafe *Cafe) { cafe.now = now }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cafe *Cafe) { cafe.logger = l }
}

// New constructs a store over the given storage medium and loads the
// persisted cart and orders.
//
// Loading fails soft: an absent key, a storage read error, or a value
// that does not parse all initialize the field to an empty sequence.
// New itself never fails.
func New(ctx context.Context, storage Storage, opts ...Option) *Cafe {
	c := &Cafe{
		storage: storage,
		logger:  slog.Default(),
		ids:     UUIDv7Generator{},
		now:     time.Now,
		menu:    menu.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cart = loadSequence[CartLine](ctx, c, CartKey)
	c.orders = loadSequence[Order](ctx, c, OrdersKey)
	return c
}

// loadSequence reads and parses one persisted sequence, falling back to
// empty on any failure.
func loadSequence[T any](ctx context.Context, c *Cafe, key string) []T {
	value, found, err := c.storage.Get(ctx, key)
	if err != nil {
		c.logger.Warn("load failed, starting empty", "key", key, "error", err)
		return nil
	}
	if !found {
		return nil
	}

	var seq []T
	if err := json.Unmarshal([]byte(value), &seq); err != nil {
		c.logger.Warn("persisted value unparseable, starting empty", "key", key, "error", err)
		return nil
	}
	return seq
}

// Menu returns a copy of the current catalog.
func (c *Cafe) Menu() menu.Catalog {
	return c.menu.Clone()
}

// Cart returns a copy of the current cart lines, in insertion order.
func (c *Cafe) Cart() []CartLine {
	return cloneLines(c.cart)
}

// Orders returns a copy of all orders, newest first.
func (c *Cafe) Orders() []Order {
	return cloneOrders(c.orders)
}

// FindOrder returns a copy of the order with the given id.
func (c *Cafe) FindOrder(orderID string) (Order, bool) {
	for _, o := range c.orders {
		if o.ID == orderID {
			o.Items = cloneLines(o.Items)
			return o, true
		}
	}
	return Order{}, false
}

// AddToCart adds quantity of item to the cart with the given variant
// choices. Quantities below 1 are treated as 1.
//
// If a line with the same item id and the same canonical variants
// already exists, its quantity is incremented and its cartId preserved;
// otherwise a new line is appended with a freshly minted cartId.
//
// The store does not validate the item against the catalog; callers
// gate availability. Returns a copy of the resulting line.
func (c *Cafe) AddToCart(ctx context.Context, item menu.Item, quantity int, variants map[string]string) (CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}
	if variants == nil {
		variants = map[string]string{}
	}

	key := CanonicalVariants(variants)
	for i := range c.cart {
		if c.cart[i].ID == item.ID && CanonicalVariants(c.cart[i].Variants) == key {
			c.cart[i].Quantity += quantity
			line := c.cart[i]
			if err := c.persistCart(ctx); err != nil {
				return line, err
			}
			return line, nil
		}
	}

	line := CartLine{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Image:       item.Image,
		Available:   item.Available,
		Quantity:    quantity,
		Variants:    variants,
		CartID:      c.ids.NewID(),
	}
	c.cart = append(c.cart, line)
	if err := c.persistCart(ctx); err != nil {
		return line, err
	}
	return line, nil
}

// RemoveFromCart deletes the line with the given cartId.
// Returns a NOT_FOUND error, with the cart unchanged, if no line matches.
func (c *Cafe) RemoveFromCart(ctx context.Context, cartID string) error {
	for i := range c.cart {
		if c.cart[i].CartID == cartID {
			c.cart = append(c.cart[:i], c.cart[i+1:]...)
			return c.persistCart(ctx)
		}
	}
	return newNotFoundError("remove_from_cart", "cart line", cartID)
}

// UpdateCartQuantity adjusts a line's quantity by delta, clamping at 1.
// A line never leaves the cart this way; use RemoveFromCart to delete.
// Returns a copy of the updated line, or NOT_FOUND if no line matches.
func (c *Cafe) UpdateCartQuantity(ctx context.Context, cartID string, delta int) (CartLine, error) {
	for i := range c.cart {
		if c.cart[i].CartID != cartID {
			continue
		}
		c.cart[i].Quantity = max(1, c.cart[i].Quantity+delta)
		line := c.cart[i]
		if err := c.persistCart(ctx); err != nil {
			return line, err
		}
		return line, nil
	}
	return CartLine{}, newNotFoundError("update_cart_quantity", "cart line", cartID)
}

// PlaceOrder submits the current cart as a new order for the given table.
//
// Returns an EMPTY_CART error, with no mutation, if the cart has no
// lines. On success the order is prepended to the order list with status
// pending, a deep snapshot of the cart, and total = sum of price times
// quantity; the cart is cleared. Returns a copy of the new order.
func (c *Cafe) PlaceOrder(ctx context.Context, tableID int) (Order, error) {
	if len(c.cart) == 0 {
		return Order{}, newEmptyCartError()
	}

	order := Order{
		ID:        c.ids.NewID(),
		TableID:   tableID,
		Items:     cloneLines(c.cart),
		Status:    StatusPending,
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Total:     Subtotal(c.cart),
	}
	c.orders = append([]Order{order}, c.orders...)
	c.cart = nil

	if err := c.persistOrders(ctx); err != nil {
		return order, err
	}
	if err := c.persistCart(ctx); err != nil {
		return order, err
	}

	order.Items = cloneLines(order.Items)
	return order, nil
}

// UpdateOrderStatus moves an order to the requested status.
//
// Only legal transitions are accepted (see NextStatus); everything else
// returns INVALID_TRANSITION with the order unchanged. All fields other
// than status are immutable.
func (c *Cafe) UpdateOrderStatus(ctx context.Context, orderID string, requested Status) error {
	for i := range c.orders {
		if c.orders[i].ID != orderID {
			continue
		}
		if err := NextStatus(c.orders[i].Status, requested); err != nil {
			return err
		}
		c.orders[i].Status = requested
		return c.persistOrders(ctx)
	}
	return newNotFoundError("update_order_status", "order", orderID)
}

// AdvanceOrder moves an order one step along the forward chain and
// returns the new status. Terminal orders return INVALID_TRANSITION.
func (c *Cafe) AdvanceOrder(ctx context.Context, orderID string) (Status, error) {
	for i := range c.orders {
		if c.orders[i].ID != orderID {
			continue
		}
		next, ok := c.orders[i].Status.Next()
		if !ok {
			return "", invalidTransition(c.orders[i].Status, "")
		}
		c.orders[i].Status = next
		if err := c.persistOrders(ctx); err != nil {
			return next, err
		}
		return next, nil
	}
	return "", newNotFoundError("advance_order", "order", orderID)
}

// CancelOrder cancels a non-terminal order.
func (c *Cafe) CancelOrder(ctx context.Context, orderID string) error {
	return c.UpdateOrderStatus(ctx, orderID, StatusCancelled)
}

// UpdateMenuItem replaces the menu item matching updated.ID inside the
// category matching categoryID.
//
// Menu edits live in memory only and reset on restart; cart and orders
// are the only persisted state.
func (c *Cafe) UpdateMenuItem(categoryID string, updated menu.Item) error {
	if err := menu.Validate(updated); err != nil {
		return &OpError{
			Code:    ErrCodeInvalidItem,
			Message: err.Error(),
			Op:      "update_menu_item",
			ID:      updated.ID,
		}
	}
	if !c.menu.UpdateItem(categoryID, updated) {
		return newNotFoundError("update_menu_item", "menu item", categoryID+"/"+updated.ID)
	}
	return nil
}

// persistCart serializes the full cart sequence to its storage key.
func (c *Cafe) persistCart(ctx context.Context) error {
	return c.persist(ctx, CartKey, c.cart, len(c.cart))
}

// persistOrders serializes the full order sequence to its storage key.
func (c *Cafe) persistOrders(ctx context.Context) error {
	return c.persist(ctx, OrdersKey, c.orders, len(c.orders))
}

func (c *Cafe) persist(ctx context.Context, key string, seq any, n int) error {
	var b []byte
	var err error
	if n == 0 {
		// Keep the persisted form a JSON array even when the in-memory
		// slice is nil.
		b = []byte("[]")
	} else {
		b, err = json.Marshal(seq)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", key, err)
		}
	}
	if err := c.storage.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
