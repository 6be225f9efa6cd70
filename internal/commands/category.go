package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
)

func newCategoryCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(
		newCategoryAddCommand(g),
		newCategoryListCommand(g),
		newCategoryDeleteCommand(g),
	)
	return cmd
}

func newCategoryAddCommand(g *globalFlags) *cobra.Command {
	var in ledger.CategoryInput
	var typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Type = model.CategoryType(typ)
			return withApp(cmd, g, func(a *app) error {
				c, err := a.ledger.AddCategory(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typ, "type", string(model.CategoryTypeExpense), "income or expense")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&in.Color, "color", "", "display color")
	return cmd
}

func newCategoryListCommand(g *globalFlags) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tDEFAULT")
				for _, c := range a.repo.Categories() {
					if typ != "" && string(c.Type) != typ {
						continue
					}
					def := ""
					if c.IsDefault {
						def = "yes"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, def)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "only income or expense categories")
	return cmd
}

func newCategoryDeleteCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("category", args[0], a.repo.Categories(), func(c model.Category) string { return c.ID })
				if err != nil {
					return err
				}
				if err := a.ledger.DeleteCategory(cmd.Context(), full); err != nil {
					if errors.Is(err, ledger.ErrDefaultCategory) {
						return fmt.Errorf("%s is a default category and cannot be deleted", full)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", full)
				return nil
			})
		},
	}
}
