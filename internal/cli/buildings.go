package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/store"
)

func newBuildingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildings",
		Short: "Manage the campus building list and its aliases",
	}

	cmd.AddCommand(newBuildingsSeedCmd())
	cmd.AddCommand(newBuildingsListCmd())
	cmd.AddCommand(newBuildingsAliasCmd())

	return cmd
}

func newBuildingsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Seed the building list from a flat file of names, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening building list: %w", err)
			}
			defer f.Close()

			names, err := building.ReadNames(f)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no building names in %s", args[0])
			}

			if err := st.SeedBuildings(context.Background(), names); err != nil {
				if errors.Is(err, store.ErrAlreadySeeded) {
					return fmt.Errorf("buildings already seeded; seeding is one-time and will not overwrite aliases")
				}
				return err
			}

			fmt.Fprintf(os.Stdout, "Seeded %d buildings.\n", len(names))
			return nil
		},
	}
}

func newBuildingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List buildings and their aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			_, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			buildings, err := st.ListBuildings(context.Background())
			if err != nil {
				return err
			}

			return WriteBuildings(os.Stdout, buildings, format)
		},
	}
}

func newBuildingsAliasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alias <building> <alias>",
		Short: "Append an alias to a building without a review session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			alias := strings.TrimSpace(args[1])
			if alias == "" {
				return fmt.Errorf("alias must not be empty")
			}

			_, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.AppendAlias(context.Background(), name, alias); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added alias %q for %q.\n", alias, name)
			return nil
		},
	}
}
