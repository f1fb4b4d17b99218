package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Example titles shared by the help text and the usage hints.
const (
	exampleTitle       = `"Classic Tomato Soup"`
	exampleDescription = `"A simple and delicious homemade tomato soup."`
	exampleIngredients = `"Tomatoes,Onion,Garlic,Vegetable Broth,Olive Oil"`
	exampleSteps       = `"1. Sauté onions and garlic. 2. Add tomatoes and broth. 3. Simmer and blend."`
	exampleNewDesc     = `"A cozy and comforting tomato soup perfect for chilly days."`
)

// Per-command usage examples.
var (
	createExample = "recipe create " + exampleTitle + " " + exampleDescription + " " +
		exampleIngredients + " " + exampleSteps + " 30"
	listExample   = "recipe list"
	findExample   = "recipe find " + exampleTitle
	updateExample = "recipe update " + exampleTitle + " " + exampleNewDesc
	deleteExample = "recipe delete " + exampleTitle
	sampleExample = "recipe sample"
	exportExample = "recipe export recipes.jsonl"
	importExample = "recipe import recipes.jsonl"
)

// helpText enumerates every command with an example invocation.
var helpText = `
Use one of the commands (create, list, find, update, delete, sample, export, import):

- To add a recipe
	recipe create <title> <description> <ingredient1,ingredient2,...> <instructions> <prepTimeInMinutes>
	Example: ` + createExample + `

- To see all recipes
	` + listExample + `

- To find a recipe
	recipe find <title>
	Example: ` + findExample + `

- To update a recipe description
	recipe update <title> <newDescription>
	Example: ` + updateExample + `

- To remove a recipe
	recipe delete <title>
	Example: ` + deleteExample + `

- To create a sample Garlic Bread recipe
	` + sampleExample + `

- To export all recipes as JSONL (to stdout when no path is given)
	recipe export [path]
	Example: ` + exportExample + `

- To import recipes from a JSONL export, skipping titles that already exist
	recipe import <path>
	Example: ` + importExample + `
`

// usageError reports a command invoked with the wrong number of arguments.
type usageError struct {
	example string
}

func (e *usageError) Error() string {
	return "Invalid input! Try usage example:\n" + e.example
}

// exactArgs is cobra.ExactArgs with the command's usage example as the error.
func exactArgs(n int, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{example: example}
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs with the command's usage example as the error.
func maxArgs(n int, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return &usageError{example: example}
		}
		return nil
	}
}

// newRootCmd builds the command tree for one invocation.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage a personal recipe collection",
		Long: `recipe keeps a personal collection of recipes in a local document store.

The store location comes from RECIPES_DB_URI (a .env file in the working
directory is read first) or db_uri in ~/.config/recipe/config.yml.`,
		// Unrecognized commands fall through to the help text
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(a.out, helpText)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		fmt.Fprint(a.out, helpText)
	})

	cmd.AddCommand(
		newCreateCmd(a),
		newListCmd(a),
		newFindCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSampleCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	return cmd
}
