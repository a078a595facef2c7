package cli

import (
	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/menu"
)

// NewMenuCommand creates the menu command and its admin subcommand.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List the menu",
		Long: `List the catalog: categories, items, prices, and availability.

The menu is the built-in catalog unless --menu points at a YAML file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(newMenuSetCommand(rootOpts))
	return cmd
}

func runMenuList(opts *RootOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts, cmd)
	catalog := c.Menu()

	if opts.Format == "json" {
		return formatter.JSON(catalog)
	}
	renderMenu(cmd.OutOrStdout(), catalog)
	return nil
}

// menuSetOptions holds flags for menu set.
type menuSetOptions struct {
	*RootOptions
	Category    string
	ItemID      string
	Name        string
	Price       float64
	Description string
	Image       string
	Available   bool
}

// newMenuSetCommand creates the admin item-edit subcommand.
//
// Edits apply to the in-memory catalog only: the menu resets on the
// next invocation. Durable menu edits belong in a --menu catalog file.
func newMenuSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &menuSetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Edit a menu item (in-memory, for the current invocation)",
		Long: `Replace fields of a menu item inside a category.

Only the flags you pass change; other fields keep their current values.
Edits are not persisted - the next invocation sees the original menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuSet(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "category id (required)")
	cmd.Flags().StringVar(&opts.ItemID, "id", "", "item id (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "new item name")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "new item price")
	cmd.Flags().StringVar(&opts.Description, "description", "", "new item description")
	cmd.Flags().StringVar(&opts.Image, "image", "", "new item image URL")
	cmd.Flags().BoolVar(&opts.Available, "available", true, "item availability")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("id")

	return cmd
}

func runMenuSet(opts *menuSetOptions, cmd *cobra.Command) error {
	c, closeCafe, err := openCafe(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeCafe()

	formatter := newFormatter(opts.RootOptions, cmd)

	current, ok := c.Menu().Find(opts.ItemID)
	if !ok {
		formatter.Error("NOT_FOUND", "menu item "+opts.ItemID+" not found", nil)
		return NewExitError(ExitFailure, "menu item not found")
	}

	// Apply only the flags the caller actually set.
	updated := current
	flags := cmd.Flags()
	if flags.Changed("name") {
		updated.Name = opts.Name
	}
	if flags.Changed("price") {
		updated.Price = opts.Price
	}
	if flags.Changed("description") {
		updated.Description = opts.Description
	}
	if flags.Changed("image") {
		updated.Image = opts.Image
	}
	if flags.Changed("available") {
		updated.Available = opts.Available
	}

	if err := c.UpdateMenuItem(opts.Category, updated); err != nil {
		return domainError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(updated)
	}
	renderMenuItem(cmd, updated)
	return nil
}

func renderMenuItem(cmd *cobra.Command, item menu.Item) {
	marker := ""
	if !item.Available {
		marker = "  (unavailable)"
	}
	cmd.Printf("Updated [%s] %s  %s%s\n", item.ID, item.Name, money(item.Price), marker)
}
