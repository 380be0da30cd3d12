package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-guard/models"
)

func (c *cli) newCategoryCmd() *cobra.Command {
	category := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := c.app.Services.CategoryService.Save(cmd.Context(), models.Category{
				Name:    strings.Join(args, " "),
				IconRes: icon,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category %d added.\n", id)
			return nil
		}),
	}
	add.Flags().StringVar(&icon, "icon", "", "Icon name")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = c.app.Services.CategoryService.Save(cmd.Context(), models.Category{
				ID:   id,
				Name: strings.Join(args[1:], " "),
			})
			return err
		}),
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: c.unlocked(func(cmd *cobra.Command, _ []string) error {
			categories, err := c.app.Services.CategoryService.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tICON")
			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, cat.Name, cat.IconRes)
			}
			return w.Flush()
		}),
	}

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category; its credentials become uncategorised",
		Args:    cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.app.Services.CategoryService.Delete(cmd.Context(), id)
		}),
	}

	category.AddCommand(add, rename, list, del)
	return category
}
