package main

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/recipebox/internal/recipe"
	"github.com/matsen/recipebox/internal/storage"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title> <description> <ingredients-csv> <instructions> <prepTimeMinutes>",
		Short: "Add a recipe",
		Long: `Add a recipe to the collection.

Ingredients are given as one comma-separated argument. A recipe whose title
already exists is not added again.

Example:
  ` + createExample,
		Args: exactArgs(5, createExample),
		// Free text may start with '-'; everything is positional
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			r := recipe.Recipe{
				Title:        args[0],
				Description:  args[1],
				Ingredients:  recipe.ParseIngredients(args[2]),
				Instructions: args[3],
				PrepTime:     recipe.Minutes(parsePrepTime(a, args[4])),
			}
			a.withStore(cmd.Context(), func(st recipeStore) {
				createRecipe(cmd.Context(), a.printer(), st, r)
			})
		},
	}
}

// parsePrepTime converts the prep time argument to minutes. Text that is
// not a finite number becomes 0, which the store rejects as below the minimum.
func parsePrepTime(a *app, s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		a.log.Debug("prep time is not a number", "value", s, "error", err)
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		a.log.Debug("prep time is not finite", "value", s)
		return 0
	}
	return n
}

// createRecipe inserts r unless a recipe with the same title exists.
func createRecipe(ctx context.Context, p *printer, st recipeStore, r recipe.Recipe) {
	p.draft(&r)

	found, err := st.FindByTitle(ctx, r.Title)
	if err != nil {
		p.failure(err, "creating recipe %q", r.Title)
		return
	}
	if found != nil {
		p.status("Recipe %q already exists!", r.Title)
		return
	}

	saved, err := st.Insert(ctx, r)
	if err != nil {
		// Another invocation may have inserted the title since the check
		if errors.Is(err, storage.ErrDuplicateTitle) {
			p.status("Recipe %q already exists!", r.Title)
			return
		}
		p.failure(err, "creating recipe %q", r.Title)
		return
	}

	p.status("Recipe %q created successfully:", r.Title)
	p.recipe(saved)
}
