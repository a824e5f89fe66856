package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/calendar"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect and export stored events",
	}

	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsExportCmd())

	return cmd
}

// eventRange parses the optional --from/--to bounds for stored-event
// queries. The end bound is widened to the end of its day so a single-day
// range covers the whole day.
func eventRange(fromValue, toValue string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if fromValue != "" {
		if from, err = parseDate(fromValue); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toValue != "" {
		if to, err = parseDate(toValue); err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = to.Add(24*time.Hour - time.Second)
	}
	return from, to, nil
}

func newEventsListCmd() *cobra.Command {
	var (
		fromValue string
		toValue   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events, optionally bounded by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			from, to, err := eventRange(fromValue, toValue)
			if err != nil {
				return err
			}

			_, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			events, err := st.ListEvents(context.Background(), from, to)
			if err != nil {
				return err
			}

			return WriteEvents(os.Stdout, events, format)
		},
	}

	cmd.Flags().StringVar(&fromValue, "from", "", "Earliest start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&toValue, "to", "", "Latest start date, YYYY-MM-DD")

	return cmd
}

func newEventsExportCmd() *cobra.Command {
	var (
		fromValue string
		toValue   string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored events as an iCalendar (.ics) feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := eventRange(fromValue, toValue)
			if err != nil {
				return err
			}

			_, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			events, err := st.ListEvents(context.Background(), from, to)
			if err != nil {
				return err
			}

			ics := calendar.GenerateICS(events)
			if outPath == "" {
				fmt.Fprint(os.Stdout, ics)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Wrote %d events to %s.\n", len(events), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromValue, "from", "", "Earliest start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&toValue, "to", "", "Latest start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")

	return cmd
}
