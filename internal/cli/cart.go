package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/cafe"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Quantity int
	Variants []string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add a menu item to the cart",
		Long: `Add a menu item to the cart by its catalog id.

Adding the same item with the same variants again merges into one cart
line and sums the quantities; different variants make a separate line.

Example:
  beanline add 1 --qty 2 --variant size=large --variant milk=oat`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Quantity, "qty", 1, "quantity to add")
	cmd.Flags().StringArrayVar(&opts.Variants, "variant", nil, "variant choice as key=value (repeatable)")

	return cmd
}

func runAdd(opts *AddOptions, itemID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	variants, err := parseVariants(opts.Variants)
	if err != nil {
		formatter.Error("BAD_VARIANT", err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid --variant", err)
	}

	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	item, ok := c.Menu().Find(itemID)
	if !ok {
		formatter.Error("NOT_FOUND", "menu item "+itemID+" not found", nil)
		return NewExitError(ExitFailure, "menu item not found")
	}
	if !item.Available {
		// Availability gates the customer surface, not the store.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is marked unavailable\n", item.Name)
	}

	line, err := c.AddToCart(cmd.Context(), item, opts.Quantity, variants)
	if err != nil {
		return domainError(formatter, err)
	}

	cart := c.Cart()
	if opts.Format == "json" {
		return formatter.JSON(struct {
			Line      cafe.CartLine `json:"line"`
			ItemCount int           `json:"itemCount"`
			Subtotal  float64       `json:"subtotal"`
		}{line, cafe.ItemCount(cart), cafe.Subtotal(cart)})
	}

	cmd.Printf("Added %dx %s", opts.Quantity, item.Name)
	if v := formatVariants(variants); v != "" {
		cmd.Printf(" (%s)", v)
	}
	cmd.Printf("\nCart: %d items, subtotal %s\n", cafe.ItemCount(cart), money(cafe.Subtotal(cart)))
	return nil
}

// parseVariants converts repeated key=value flags to a map.
func parseVariants(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	variants := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("variant %q must be key=value", pair)
		}
		variants[key] = value
	}
	return variants, nil
}

// NewCartCommand creates the cart command and its subcommands.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Long: `Show the cart: lines with quantities and variants, item count,
subtotal, tax, and total.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartShow(rootOpts, cmd)
		},
	}

	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartQtyCommand(rootOpts))
	return cmd
}

// cartView is the JSON payload for cart show.
type cartView struct {
	Lines     []cafe.CartLine `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
	Total     float64         `json:"total"`
}

func runCartShow(opts *RootOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)
	cart := c.Cart()

	if opts.Format == "json" {
		return formatter.JSON(cartView{
			Lines:     cart,
			ItemCount: cafe.ItemCount(cart),
			Subtotal:  cafe.Subtotal(cart),
			Tax:       cafe.Tax(cart),
			Total:     cafe.GrandTotal(cart),
		})
	}
	renderCart(cmd.OutOrStdout(), cart)
	return nil
}

// newCartRemoveCommand creates the cart remove subcommand.
func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <cart-id>",
		Short: "Remove a line from the cart",
		Long: `Remove a cart line by its cart id (shown by "beanline cart").

This is the only way a line leaves the cart; quantity adjustments clamp
at 1 and never delete.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartRemove(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCartRemove(opts *RootOptions, cartID string, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)

	if err := c.RemoveFromCart(cmd.Context(), cartID); err != nil {
		return domainError(formatter, err)
	}

	cart := c.Cart()
	if opts.Format == "json" {
		return formatter.JSON(struct {
			Removed   string `json:"removed"`
			ItemCount int    `json:"itemCount"`
		}{cartID, cafe.ItemCount(cart)})
	}
	cmd.Printf("Removed line %s (%d items left)\n", cartID, cafe.ItemCount(cart))
	return nil
}

// cartQtyOptions holds flags for cart qty.
type cartQtyOptions struct {
	*RootOptions
	Delta int
}

// newCartQtyCommand creates the cart qty subcommand.
func newCartQtyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &cartQtyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "qty <cart-id>",
		Short: "Adjust a cart line's quantity",
		Long: `Adjust a cart line's quantity by a delta (may be negative).

Quantity clamps at 1; to delete the line use "beanline cart remove".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartQty(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Delta, "delta", 0, "quantity change, e.g. 1 or -1 (required)")
	cmd.MarkFlagRequired("delta")

	return cmd
}

func runCartQty(opts *cartQtyOptions, cartID string, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts.RootOptions, cmd)

	line, err := c.UpdateCartQuantity(cmd.Context(), cartID, opts.Delta)
	if err != nil {
		return domainError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(line)
	}
	cmd.Printf("%s now %dx (%s)\n", line.Name, line.Quantity, money(line.LineTotal()))
	return nil
}
