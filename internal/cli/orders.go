package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/cafe"
)

// OrdersOptions holds flags for the orders command.
type OrdersOptions struct {
	*RootOptions
	Status string
}

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrders(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (pending|preparing|ready|completed|cancelled)")

	return cmd
}

func runOrders(opts *OrdersOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var filter cafe.Status
	if opts.Status != "" {
		status, err := cafe.ParseStatus(opts.Status)
		if err != nil {
			return domainError(formatter, err)
		}
		filter = status
	}

	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	orders := c.Orders()
	if filter != "" {
		orders = cafe.ByStatus(orders, filter)
	}

	if opts.Format == "json" {
		return formatter.JSON(orders)
	}
	renderOrders(cmd.OutOrStdout(), orders, time.Now())
	return nil
}

// NewAdvanceCommand creates the advance command.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <order-id>",
		Short: "Move an order to its next status",
		Long: `Move an order one step along its lifecycle:
pending -> preparing -> ready -> completed.

Completed and cancelled orders cannot move.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runAdvance(opts *RootOptions, orderID string, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)

	status, err := c.AdvanceOrder(cmd.Context(), orderID)
	if err != nil {
		return domainError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(struct {
			ID     string      `json:"id"`
			Status cafe.Status `json:"status"`
		}{orderID, status})
	}
	cmd.Printf("Order #%s is now %s\n", shortID(orderID), status)
	return nil
}

// NewCancelCommand creates the cancel command.
func NewCancelCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order",
		Long:  `Cancel an order that is not yet completed. Cancellation is final.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCancel(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCancel(opts *RootOptions, orderID string, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)

	if err := c.CancelOrder(cmd.Context(), orderID); err != nil {
		return domainError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(struct {
			ID     string      `json:"id"`
			Status cafe.Status `json:"status"`
		}{orderID, cafe.StatusCancelled})
	}
	cmd.Printf("Order #%s cancelled\n", shortID(orderID))
	return nil
}
