package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/config"
	"github.com/mthorsen/campus-events/internal/logger"
	"github.com/mthorsen/campus-events/internal/store"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDB      string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command and its subcommand tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campus-events",
		Short: "Scrape the campus events calendar into building-resolved event records",
		Long: `campus-events scrapes the campus calendar's per-day listing pages,
parses each event's detail page, and resolves free-text locations to
canonical campus buildings via fuzzy matching. Events and the building
alias dictionary are kept in a local database.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newReviewCmd())
	cmd.AddCommand(newBuildingsCmd())
	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// setup loads the config, configures logging, and opens the store. Every
// subcommand that touches data goes through here.
func setup() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	level := logger.Level(strings.ToUpper(cfg.LogLevel))
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	dbPath := cfg.DatabasePath
	if flagDB != "" {
		dbPath = flagDB
	}

	st, err := store.Open(config.ExpandHome(dbPath))
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	return cfg, st, nil
}

// outputFormat validates the --format flag.
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// parseDate parses a YYYY-MM-DD flag value as a local calendar date.
func parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return date, nil
}

// parseDateRange parses the --from/--to pair shared by several commands.
func parseDateRange(fromValue, toValue string) (time.Time, time.Time, error) {
	from, err := parseDate(fromValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(toValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", toValue, fromValue)
	}
	return from, to, nil
}
