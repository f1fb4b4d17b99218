package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <title>",
		Short: "Show one recipe by title",
		Long: `Show the recipe whose title matches exactly.

Example:
  ` + findExample,
		Args: exactArgs(1, findExample),
		// Titles may start with '-'
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				findRecipe(cmd.Context(), a.printer(), st, args[0])
			})
		},
	}
}

// findRecipe prints the recipe with this exact title, if any.
func findRecipe(ctx context.Context, p *printer, st recipeStore, title string) {
	p.status("Searching for recipe %q...", title)

	found, err := st.FindByTitle(ctx, title)
	if err != nil {
		p.failure(err, "finding recipe %q", title)
		return
	}
	if found == nil {
		p.status("Recipe %q not found!", title)
		return
	}

	p.status("Recipe Found:")
	p.recipe(found)
}
