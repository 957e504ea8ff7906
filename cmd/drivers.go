package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smazurov/audiobridge/internal/audio"
	"github.com/smazurov/audiobridge/internal/logging"
	"github.com/spf13/cobra"
)

// CreateDriversCmd creates the drivers command.
func CreateDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List installed hardware audio drivers",
		Long:  `Lists the drivers the [Asio.*] sections can name. Driver= values are matched against NAME or ID, ignoring case.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			initLogging(c, false)
			registry := newNatives(logging.GetLogger("audio")).Registry
			drivers, err := registry.Drivers()
			if err != nil {
				return fmt.Errorf("failed to list drivers: %w", err)
			}
			return writeDrivers(c.OutOrStdout(), drivers)
		},
	}
}

func writeDrivers(w io.Writer, drivers []audio.Driver) error {
	if len(drivers) == 0 {
		_, err := fmt.Fprintln(w, "No drivers installed")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tDESCRIPTION")
	for _, d := range drivers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.ID, d.Description)
	}
	return tw.Flush()
}
