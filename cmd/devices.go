package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/smazurov/audiobridge/internal/devices"
	"github.com/smazurov/audiobridge/internal/logging"
	"github.com/spf13/cobra"
)

// CreateDevicesCmd creates the devices command.
func CreateDevicesCmd() *cobra.Command {
	var iniPath string
	var asJSON bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List the audio devices the configuration exposes",
		Long: `Reads RS_ASIO.ini, registers the enabled backends and prints the merged device list. ` +
			`Backends that fail to open or enumerate are reported on stderr and left out.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			initLogging(c, verbose)
			result := loadIni(iniPath)

			agg := devices.NewAggregator(devicesLogger())
			defer agg.Close()

			setupErr := devices.Setup(agg, result.Settings, newNatives(logging.GetLogger("audio")), devicesLogger())
			list, listErr := agg.ListDevices()

			for _, be := range append(devices.BackendErrors(setupErr), devices.BackendErrors(listErr)...) {
				fmt.Fprintf(c.ErrOrStderr(), "warning: %s: %v\n", be.Backend, be.Err)
			}

			if asJSON {
				return writeDevicesJSON(c.OutOrStdout(), list)
			}
			return writeDevicesTable(c.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&iniPath, "ini", "", "Path to RS_ASIO.ini (default: next to the executable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log enumeration details")
	return cmd
}

func writeDevicesJSON(w io.Writer, list []devices.Device) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func writeDevicesTable(w io.Writer, list []devices.Device) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No devices")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBACKEND\tDIRECTION\tDRIVER\tCHANNEL\tFLAGS")
	for _, d := range list {
		channel := "-"
		if d.Channel != nil {
			channel = strconv.FormatUint(uint64(*d.Channel), 10)
		}
		driver := d.Driver
		if driver == "" {
			driver = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, d.Backend, d.Direction, driver, channel, deviceFlags(d))
	}
	return tw.Flush()
}

func deviceFlags(d devices.Device) string {
	switch {
	case d.Default:
		return "default"
	case d.Backend == devices.BackendAsio && d.Driver != "" && !d.Installed:
		return "missing-driver"
	}
	return ""
}
