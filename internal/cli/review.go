package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/review"
	"github.com/mthorsen/campus-events/internal/scraper"
)

func newReviewCmd() *cobra.Command {
	var (
		fromValue string
		toValue   string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Scrape a date range interactively to review and correct building matches",
		Long: `Runs the scrape pipeline with the alias correction session attached.
Every location match is shown for confirmation; corrections are stored as
new aliases and take effect for the rest of the run. Review runs do not
store events; run 'scrape' afterwards to pick up the corrected matches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseDateRange(fromValue, toValue)
			if err != nil {
				return err
			}

			cfg, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			set, err := st.LoadBuildingSet(context.Background())
			if err != nil {
				return fmt.Errorf("loading buildings: %w", err)
			}
			if set.Len() == 0 {
				return fmt.Errorf("no buildings in the store; seed them first with 'buildings seed'")
			}

			session := review.NewSession(os.Stdin, os.Stdout, set, st)
			resolver := building.NewResolver(set, session)
			sc := scraper.NewWithBaseURL(cfg.CalendarURL, resolver)

			events, err := sc.Run(from, to)
			if err != nil {
				return fmt.Errorf("scraping: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Review done: %d locations checked.\n", len(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromValue, "from", "", "First date to review, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toValue, "to", "", "Last date to review, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
