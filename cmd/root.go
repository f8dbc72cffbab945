package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Woeter69/web-scrapper/internal/app"
	"github.com/Woeter69/web-scrapper/internal/config"
	"github.com/Woeter69/web-scrapper/internal/crawler"
	"github.com/Woeter69/web-scrapper/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

// appKeyType is the key for storing the App in the command context.
type appKeyType string

const appKey appKeyType = "app"

// App is the slice of the application that commands use. Keeping it an
// interface lets tests inject a fake application.
type App interface {
	Logger() *zap.Logger
	Config() config.Config
	Run(ctx context.Context, seedURL string) (*crawler.Summary, error)
	Close(ctx context.Context)
}

// newApp is the application factory. It is a variable so tests can replace
// it with a fake factory.
var newApp = func(ctx context.Context) (App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return app.Build(ctx, cfg, logger), nil
}

// newRootCmd creates and configures the root command. The application is
// built in PersistentPreRunE and stored in the command context so every
// subcommand can retrieve it.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web-scrapper",
		Short: "A polite, single-site web scraper.",
		Long: `web-scrapper crawls one website breadth-first, extracting the title,
headings, paragraphs, and links from every page it visits. Results are saved
as JSON files grouped by domain and can optionally be mirrored to MongoDB,
PostgreSQL, or SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			appInstance, ok := cmd.Context().Value(appKey).(App)
			if !ok || appInstance == nil {
				return
			}
			// The command context is canceled once Ctrl-C fires, so shutdown
			// runs on its own deadline.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			appInstance.Close(ctx)
			_ = appInstance.Logger().Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point. SIGINT and SIGTERM cancel the command
// context so an in-flight crawl stops at the next loop iteration and still
// reports the pages it scraped.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
