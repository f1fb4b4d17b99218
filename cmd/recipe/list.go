package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all recipes",
		Long: `Show every recipe in the collection, numbered from 1.

Example:
  ` + listExample,
		Args: exactArgs(0, listExample),
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				listRecipes(cmd.Context(), a.printer(), st)
			})
		},
	}
}

// listRecipes prints every stored recipe in store order.
func listRecipes(ctx context.Context, p *printer, st recipeStore) {
	p.status("Listing all recipes...")

	all, err := st.FindAll(ctx)
	if err != nil {
		p.failure(err, "listing all recipes")
		return
	}
	if len(all) == 0 {
		p.status("No recipe found!")
		return
	}

	for i := range all {
		fmt.Fprintf(p.out, "\t[%d] %s\n", i+1, p.heading(fmt.Sprintf("Recipe #%d:", i+1)))
		p.recipe(&all[i])
	}
}
