// Package main provides the recipe CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/matsen/recipebox/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, cfgErr := config.Load()
	logger := newLogger(os.Stderr, cfg)
	if cfgErr != nil {
		logger.Error("ignoring global config, using environment only",
			"path", config.GlobalConfigPath(), "error", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, os.Stdout, os.Stderr, logger)
	a.styled = isatty.IsTerminal(os.Stdout.Fd())

	code := execute(ctx, a, os.Args[1:])
	stop()
	os.Exit(code)
}

// newLogger builds the stderr text logger at the configured level.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}
	return logger
}

// execute runs one command line against a and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(a.out, usageErr.Error())
		return ExitSuccess
	}

	// Print the error since we have SilenceErrors: true
	fmt.Fprintf(a.errOut, "Error: %s\n", err)
	return ExitError
}
