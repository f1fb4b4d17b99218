package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/matsen/recipebox/internal/config"
	"github.com/matsen/recipebox/internal/recipe"
	"github.com/matsen/recipebox/internal/storage"
)

// recipeStore is the set of store operations the commands use.
type recipeStore interface {
	FindByTitle(ctx context.Context, title string) (*recipe.Recipe, error)
	FindAll(ctx context.Context) ([]recipe.Recipe, error)
	Insert(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
	Import(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
	UpdateDescriptionByTitle(ctx context.Context, title, description string) (*recipe.Recipe, error)
	DeleteByTitle(ctx context.Context, title string) (*recipe.Recipe, error)
}

// app carries the resolved configuration and output streams for one invocation.
type app struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
	styled bool
}

func newApp(cfg *config.Config, out, errOut io.Writer, logger *slog.Logger) *app {
	return &app{cfg: cfg, out: out, errOut: errOut, log: logger}
}

// withStore connects to the recipe store, runs fn, and closes the connection.
// A failed connection is logged and fn receives a store whose operations
// all report the connection error.
func (a *app) withStore(ctx context.Context, fn func(st recipeStore)) {
	target := a.cfg.DatabaseURI

	db, err := storage.Open(ctx, target)
	if err != nil {
		a.log.Error("failed to connect to recipe store", "target", target, "error", err)
		fn(disconnectedStore{err: err})
		return
	}
	a.log.Info("connected to recipe store", "target", target)

	defer func() {
		if err := db.Close(); err != nil {
			a.log.Error("error closing recipe store", "target", target, "error", err)
			return
		}
		a.log.Info("recipe store connection closed", "target", target)
	}()

	fn(db)
}

// printer returns the console renderer for this invocation.
func (a *app) printer() *printer {
	return &printer{out: a.out, errOut: a.errOut, styled: a.styled}
}

// disconnectedStore stands in for a store that could not be reached.
type disconnectedStore struct {
	err error
}

func (d disconnectedStore) fail() error {
	return fmt.Errorf("%w: %w", storage.ErrNotConnected, d.err)
}

func (d disconnectedStore) FindByTitle(context.Context, string) (*recipe.Recipe, error) {
	return nil, d.fail()
}

func (d disconnectedStore) FindAll(context.Context) ([]recipe.Recipe, error) {
	return nil, d.fail()
}

func (d disconnectedStore) Insert(context.Context, recipe.Recipe) (*recipe.Recipe, error) {
	return nil, d.fail()
}

func (d disconnectedStore) Import(context.Context, recipe.Recipe) (*recipe.Recipe, error) {
	return nil, d.fail()
}

func (d disconnectedStore) UpdateDescriptionByTitle(context.Context, string, string) (*recipe.Recipe, error) {
	return nil, d.fail()
}

func (d disconnectedStore) DeleteByTitle(context.Context, string) (*recipe.Recipe, error) {
	return nil, d.fail()
}
