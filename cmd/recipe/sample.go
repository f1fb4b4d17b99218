package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/recipebox/internal/recipe"
)

func newSampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Add the sample Garlic Bread recipe",
		Long: `Add a fixed Garlic Bread recipe, handy for trying the other commands.
Running it again reports that the recipe already exists.

Example:
  ` + sampleExample,
		Args: exactArgs(0, sampleExample),
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				createRecipe(cmd.Context(), a.printer(), st, recipe.Sample())
			})
		},
	}
}
