package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/logger"
	"github.com/mthorsen/campus-events/internal/scraper"
)

func newScrapeCmd() *cobra.Command {
	var (
		fromValue string
		toValue   string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape a date range and store the events",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			from, to, err := parseDateRange(fromValue, toValue)
			if err != nil {
				return err
			}

			cfg, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			set, err := st.LoadBuildingSet(ctx)
			if err != nil {
				return fmt.Errorf("loading buildings: %w", err)
			}
			if set.Len() == 0 {
				logger.Warn("building set is empty; events will have no building", nil)
			}

			resolver := building.NewResolver(set, nil)
			sc := scraper.NewWithBaseURL(cfg.CalendarURL, resolver)

			events, err := sc.Run(from, to)
			if err != nil {
				return fmt.Errorf("scraping: %w", err)
			}

			if !dryRun {
				for _, evt := range events {
					if err := st.UpsertEvent(ctx, evt); err != nil {
						return fmt.Errorf("storing event: %w", err)
					}
				}
			}

			result := &ScrapeResult{
				From:    from.Format("2006-01-02"),
				To:      to.Format("2006-01-02"),
				Stored:  !dryRun,
				Events:  events,
				Metrics: logger.MetricsSnapshot(),
			}
			return WriteScrapeResult(os.Stdout, result, format, flagVerbose)
		},
	}

	cmd.Flags().StringVar(&fromValue, "from", "", "First date to scrape, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toValue, "to", "", "Last date to scrape, YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scrape without storing anything")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
