package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <title> <newDescription>",
		Short: "Replace a recipe's description",
		Long: `Replace the description of the recipe with this title. No other field
changes.

Example:
  ` + updateExample,
		Args:               exactArgs(2, updateExample),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				updateRecipeDescription(cmd.Context(), a.printer(), st, args[0], args[1])
			})
		},
	}
}

// updateRecipeDescription replaces the description of the titled recipe.
func updateRecipeDescription(ctx context.Context, p *printer, st recipeStore, title, description string) {
	p.status("Updating description for %q, new description %q...", title, description)

	updated, err := st.UpdateDescriptionByTitle(ctx, title, description)
	if err != nil {
		p.failure(err, "updating recipe %q", title)
		return
	}
	if updated == nil {
		p.status("Recipe %q not updated!", title)
		return
	}

	p.status("Recipe updated successfully:")
	p.recipe(updated)
}
