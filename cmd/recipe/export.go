package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/recipebox/internal/storage"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write all recipes as JSONL",
		Long: `Write every recipe as one JSON document per line. With no path the
documents go to stdout, so the output can be piped or redirected.

The export keeps IDs and creation times; 'recipe import' restores it.

Examples:
  ` + exportExample + `
  recipe export > backup.jsonl`,
		Args:               maxArgs(1, exportExample),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			a.withStore(cmd.Context(), func(st recipeStore) {
				exportRecipes(cmd.Context(), a.printer(), st, path)
			})
		},
	}
}

// exportRecipes writes all recipes to path, or to stdout when path is empty.
func exportRecipes(ctx context.Context, p *printer, st recipeStore, path string) {
	all, err := st.FindAll(ctx)
	if err != nil {
		p.failure(err, "exporting recipes")
		return
	}

	if path == "" {
		if err := storage.Encode(p.out, all); err != nil {
			p.failure(err, "exporting recipes")
		}
		return
	}

	if err := storage.WriteAll(path, all); err != nil {
		p.failure(err, "exporting recipes to %s", path)
		return
	}
	p.status("Exported %s to %s", pluralRecipes(len(all)), path)
}

// pluralRecipes formats a recipe count, e.g. "1 recipe" or "3 recipes".
func pluralRecipes(n int) string {
	if n == 1 {
		return "1 recipe"
	}
	return fmt.Sprintf("%d recipes", n)
}
