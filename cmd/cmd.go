// Package cmd holds the one-shot subcommands of the audiobridge binary.
package cmd

import (
	"log/slog"

	"github.com/smazurov/audiobridge/internal/config"
	"github.com/smazurov/audiobridge/internal/devices"
	"github.com/smazurov/audiobridge/internal/logging"
	"github.com/spf13/cobra"
)

// newNatives is replaced in tests.
var newNatives = devices.DefaultNatives

// defaultOptionsFile is read when the root --config flag is not available.
const defaultOptionsFile = "audiobridge.toml"

// initLogging applies the [logging] table of the options file, keeping the
// global level at warn so subcommand output stays clean unless verbose.
func initLogging(c *cobra.Command, verbose bool) {
	path := defaultOptionsFile
	if f := c.Flag("config"); f != nil && f.Value.String() != "" {
		path = f.Value.String()
	}
	cfg := config.LoadLoggingConfig(path)
	cfg.Level = "warn"
	if verbose {
		cfg.Level = "debug"
	}
	logging.Initialize(cfg)
}

// loadIni reads the INI at path, or next to the executable when path is empty.
func loadIni(path string) config.LoadResult {
	logger := logging.GetLogger("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			logger.Warn("Failed to locate RS_ASIO.ini", "error", err)
		}
	}
	return config.NewStore(path, logger).Result()
}

func devicesLogger() *slog.Logger {
	return logging.GetLogger("devices")
}
