package cmd

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/audiobridge/internal/config"
	"github.com/spf13/cobra"
)

// CreateConfigCmd creates the config command.
func CreateConfigCmd() *cobra.Command {
	var iniPath string
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective RS_ASIO.ini settings",
		Long: `Parses RS_ASIO.ini and prints the resulting settings as TOML, ` +
			`followed by every line the parser skipped and why.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			initLogging(c, false)

			if defaults {
				return writeSettings(c.OutOrStdout(), config.Defaults())
			}

			result := loadIni(iniPath)
			out := c.OutOrStdout()
			if !result.Found {
				fmt.Fprintf(out, "# %s not found, built-in defaults\n", displayPath(result.Path))
			} else {
				fmt.Fprintf(out, "# %s\n", result.Path)
			}
			if err := writeSettings(out, result.Settings); err != nil {
				return err
			}
			writeDiagnostics(out, result.Diagnostics)
			return nil
		},
	}

	cmd.Flags().StringVar(&iniPath, "ini", "", "Path to RS_ASIO.ini (default: next to the executable)")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Print the built-in defaults and exit")
	return cmd
}

func writeSettings(w io.Writer, s config.Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeDiagnostics(w io.Writer, diags []config.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n# %d line(s) skipped:\n", len(diags))
	for _, d := range diags {
		if d.Key != "" {
			fmt.Fprintf(w, "#   line %d [%s] %s: %s\n", d.Line, d.Section, d.Key, d.Message)
			continue
		}
		fmt.Fprintf(w, "#   line %d: %s\n", d.Line, d.Message)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "RS_ASIO.ini"
	}
	return path
}
