package cli

import (
	"github.com/spf13/cobra"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Table int
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the cart as an order",
		Long: `Submit the current cart as a new order for a table.

The order starts pending and appears on the kitchen board; the cart is
cleared. Checking out an empty cart fails without creating anything.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Table, "table", 1, "table number")

	return cmd
}

func runCheckout(opts *CheckoutOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts.RootOptions, cmd)

	order, err := c.PlaceOrder(cmd.Context(), opts.Table)
	if err != nil {
		return domainError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(order)
	}
	renderReceipt(cmd.OutOrStdout(), order)
	return nil
}
