package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Remove a recipe by title",
		Long: `Remove the recipe whose title matches exactly.

Example:
  ` + deleteExample,
		Args: exactArgs(1, deleteExample),
		// Titles may start with '-'
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				deleteRecipe(cmd.Context(), a.printer(), st, args[0])
			})
		},
	}
}

// deleteRecipe removes the titled recipe.
func deleteRecipe(ctx context.Context, p *printer, st recipeStore, title string) {
	p.status("Deleting recipe %q...", title)

	deleted, err := st.DeleteByTitle(ctx, title)
	if err != nil {
		p.failure(err, "deleting recipe %q", title)
		return
	}
	if deleted == nil {
		p.status("Recipe %q not found or already deleted!", title)
		return
	}

	p.status("Successfully deleted recipe %q", title)
}
