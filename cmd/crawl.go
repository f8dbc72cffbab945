// Package cmd defines and implements the CLI commands for the web-scrapper executable.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newCrawlCmd creates and configures the 'crawl' subcommand. The seed URL
// comes from the first argument or, when omitted, from an interactive prompt.
func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl [url]",
		Short: "Scrape one website breadth-first",
		Long: `Crawls the given website starting from the seed URL, visiting up to
max_pages same-host pages in breadth-first order. Pages disallowed by
robots.txt are skipped, and a politeness delay separates successive fetches.`,

		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCommand,
	}
}

func runCrawlCommand(cmd *cobra.Command, args []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}

	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		raw, err = promptSeed(cmd)
		if err != nil {
			return err
		}
	}

	seed, err := normalizeSeed(raw)
	if err != nil {
		return err
	}

	// Interrupts surface as context.Canceled with a partial summary; that is
	// a normal way to end a crawl, not a command failure.
	summary, err := appInstance.Run(cmd.Context(), seed)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run crawl: %w", err)
	}

	if summary != nil {
		appInstance.Logger().Info("Crawl command finished",
			zap.String("crawl_id", summary.CrawlID),
			zap.Int("pages", summary.PagesScraped),
			zap.Duration("duration", summary.Duration),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Scraping complete. %d pages scraped.\n", summary.PagesScraped)
	}
	return nil
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

func promptSeed(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter the website URL to scrape: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read seed URL: %w", err)
	}
	return line, nil
}

// normalizeSeed fills in a missing scheme so plain hosts like "example.com"
// work as seeds. The scheme must be prepended before parsing: url.Parse
// reads "localhost:8080/path" as scheme "localhost".
func normalizeSeed(raw string) (string, error) {
	seed := strings.TrimSpace(raw)
	if seed == "" {
		return "", errors.New("no seed URL provided")
	}
	if !strings.HasPrefix(seed, "http://") && !strings.HasPrefix(seed, "https://") {
		seed = "https://" + seed
	}
	return seed, nil
}
