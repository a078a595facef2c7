package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/cafe"
)

// KitchenOptions holds flags for the kitchen command.
type KitchenOptions struct {
	*RootOptions
	Refresh int
}

// NewKitchenCommand creates the kitchen display command.
func NewKitchenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KitchenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "kitchen",
		Short: "Show the kitchen display board",
		Long: `Show the kitchen display board: in-flight orders grouped into
New Orders, In Progress, and Ready to Serve, with each order's table,
items, age, and next step.

With --refresh the board re-renders on an interval so order ages tick
live; stop with Ctrl-C.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKitchen(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Refresh, "refresh", 0, "re-render every n seconds (0 renders once)")

	return cmd
}

func runKitchen(opts *KitchenOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Format == "json" {
		// The board is a display surface; JSON callers get the active
		// orders and aggregate once, refresh or not.
		orders := c.Orders()
		return formatter.JSON(struct {
			Active []cafe.Order        `json:"active"`
			Counts map[cafe.Status]int `json:"counts"`
		}{cafe.ActiveOrders(orders), cafe.CountByStatus(orders)})
	}

	renderKitchen(cmd.OutOrStdout(), c.Orders(), time.Now())
	if opts.Refresh <= 0 {
		return nil
	}

	// The display timer only redraws; it never touches the data model.
	ticker := time.NewTicker(time.Duration(opts.Refresh) * time.Second)
	defer ticker.Stop()
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cmd.Println()
			renderKitchen(cmd.OutOrStdout(), c.Orders(), time.Now())
		}
	}
}
