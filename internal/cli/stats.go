package cli

import (
	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/cafe"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show order counts and revenue",
		Long: `Show per-status order counts and revenue.

Revenue sums every order ever placed, whatever its status - the
dashboard's historical metric. Realized revenue counts completed orders
only.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
	return cmd
}

// statsView is the JSON payload for stats.
type statsView struct {
	Total    int                 `json:"total"`
	Active   int                 `json:"active"`
	Counts   map[cafe.Status]int `json:"counts"`
	Revenue  float64             `json:"revenue"`
	Realized float64             `json:"realizedRevenue"`
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)
	orders := c.Orders()

	if opts.Format == "json" {
		return formatter.JSON(statsView{
			Total:    len(orders),
			Active:   len(cafe.ActiveOrders(orders)),
			Counts:   cafe.CountByStatus(orders),
			Revenue:  cafe.Revenue(orders),
			Realized: cafe.RealizedRevenue(orders),
		})
	}
	renderStats(cmd.OutOrStdout(), orders)
	return nil
}
