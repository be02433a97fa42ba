// Package cli provides the command-line interface for shopcrawl.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/law-makers/shopcrawl/internal/app"
	"github.com/law-makers/shopcrawl/internal/config"
)

// Version is overridden at build time with -ldflags
var Version = "0.1.0"

// NewRootCommand builds the shopcrawl command. It takes no arguments; flags
// only change ambient settings.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopcrawl",
		Short: "Scrape the webscraper.io load more catalogue into CSV files",
		Long: `Shopcrawl fetches the six categories of the webscraper.io "load more"
e-commerce demo and writes one CSV file per category.

Pages that paginate with a load more button are expanded in a headless
browser before the products are extracted.`,
		Example: `  # scrape every category into the current directory
  shopcrawl

  # write into ./out and stop at the first failing category
  shopcrawl -o out --fail-fast`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	config.RegisterFlags(cmd)
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// Execute runs the root command with ctx. Cancelling ctx stops the run
// before the next category and tears down any open browser session.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	categories, err := a.Categories()
	if err != nil {
		return err
	}

	quiet := cfg.LogLevel == "error"
	progress := newProgress(cmd.ErrOrStderr(), len(categories), cfg.Progress && !cfg.JSONLog && !quiet)

	reports, runErr := a.Run(cmd.Context(), progress.Observe)
	progress.Finish()

	if !quiet {
		printSummary(cmd.OutOrStdout(), reports, a.Uptime())
	}

	return runErr
}
