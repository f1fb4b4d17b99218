package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/recipebox/internal/storage"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Add recipes from a JSONL export",
		Long: `Add the recipes in a JSONL file written by 'recipe export'.

Recipes whose title already exists are skipped. IDs and creation times in
the file are kept; missing ones are generated.

Example:
  ` + importExample,
		Args:               exactArgs(1, importExample),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			a.withStore(cmd.Context(), func(st recipeStore) {
				importRecipes(cmd.Context(), a.printer(), st, args[0])
			})
		},
	}
}

// importResult counts the outcome of an import.
type importResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// importRecipes adds every recipe in the JSONL file at path that is not
// already in the store.
func importRecipes(ctx context.Context, p *printer, st recipeStore, path string) importResult {
	var res importResult

	recipes, err := storage.ReadAll(path)
	if err != nil {
		p.failure(err, "reading %s", path)
		return res
	}

	for _, r := range recipes {
		found, err := st.FindByTitle(ctx, r.Title)
		if err != nil {
			p.failure(err, "importing recipe %q", r.Title)
			res.Failed++
			continue
		}
		if found != nil {
			res.Skipped++
			continue
		}

		if _, err := st.Import(ctx, r); err != nil {
			p.failure(err, "importing recipe %q", r.Title)
			res.Failed++
			continue
		}
		res.Imported++
	}

	p.status("Imported %s from %s, skipped %d existing, %d failed",
		pluralRecipes(res.Imported), path, res.Skipped, res.Failed)
	return res
}
