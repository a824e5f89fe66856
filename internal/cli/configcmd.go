package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mthorsen/campus-events/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the campus-events config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Wrote %s.\n", config.ExpandHome(path))
			return nil
		},
	})

	return cmd
}
