package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/audiobridge/cmd"
	"github.com/smazurov/audiobridge/internal/api"
	"github.com/smazurov/audiobridge/internal/audio"
	"github.com/smazurov/audiobridge/internal/config"
	"github.com/smazurov/audiobridge/internal/devices"
	"github.com/smazurov/audiobridge/internal/events"
	"github.com/smazurov/audiobridge/internal/logging"
	"github.com/smazurov/audiobridge/internal/metrics"
	"github.com/smazurov/audiobridge/internal/systemd"
	"github.com/smazurov/audiobridge/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to service options file" short:"c" default:"audiobridge.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// RS_ASIO.ini location; empty means next to the executable
	Ini string `help:"Path to RS_ASIO.ini" default:"" toml:"ini.path" env:"INI_PATH"`
	// Watch the INI and rebuild the device list on change
	Watch         bool   `help:"Reload RS_ASIO.ini on change" default:"true" toml:"ini.watch" env:"INI_WATCH"`
	WatchDebounce string `help:"Delay before reloading a changed INI" default:"250ms" toml:"ini.debounce" env:"INI_DEBOUNCE"`

	// Hotplug settings
	Hotplug bool `help:"Re-enumerate when sound cards are added or removed" default:"true" toml:"features.hotplug" env:"FEATURES_HOTPLUG"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingConfig  string `help:"Config parser logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingDevices string `help:"Devices logging level" default:"info" toml:"logging.devices" env:"LOGGING_DEVICES"`
	LoggingAudio   string `help:"Native audio logging level" default:"info" toml:"logging.audio" env:"LOGGING_AUDIO"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

// currentConfig holds the most recent INI load for the API.
type currentConfig struct {
	mu     sync.RWMutex
	result config.LoadResult
}

func (c *currentConfig) set(r config.LoadResult) {
	c.mu.Lock()
	c.result = r
	c.mu.Unlock()
}

func (c *currentConfig) get() config.LoadResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

func publishLoaded(bus *events.Bus, r config.LoadResult, reload bool) {
	bus.Publish(events.ConfigLoadedEvent{
		Path:         r.Path,
		Found:        r.Found,
		Reload:       reload,
		EnableAsio:   r.Settings.EnableAsio,
		EnableWasapi: r.Settings.EnableWasapi,
		Diagnostics:  r.DiagnosticCounts(),
		Timestamp:    time.Now().Format(time.RFC3339),
	})
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadOptions(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load options", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"config":  opts.LoggingConfig,
				"devices": opts.LoggingDevices,
				"audio":   opts.LoggingAudio,
				"api":     opts.LoggingAPI,
				"http":    opts.LoggingHTTP,
			},
		})
		logger := logging.GetLogger("main")
		logger.Info("Starting", "version", version.String())

		bus := events.New()
		notifier := systemd.NewNotifier(logger)

		var m *metrics.Metrics
		if opts.MetricsEnabled {
			m = metrics.New()
			m.Subscribe(bus)
		}

		iniPath := opts.Ini
		if iniPath == "" {
			var err error
			if iniPath, err = config.DefaultPath(); err != nil {
				logger.Warn("Failed to locate RS_ASIO.ini", "error", err)
			}
		}

		configLogger := logging.GetLogger("config")
		current := &currentConfig{}
		initial := config.Load(iniPath, configLogger)
		current.set(initial)
		publishLoaded(bus, initial, false)

		svc := devices.NewService(devices.DefaultNatives(logging.GetLogger("audio")), bus, logging.GetLogger("devices"))
		list := svc.Apply(initial.Settings)
		logger.Info("Devices enumerated", "count", len(list), "backends", svc.Backends())

		var watcher *config.Watcher[config.LoadResult]
		if opts.Watch && iniPath != "" {
			debounce, err := time.ParseDuration(opts.WatchDebounce)
			if err != nil {
				logger.Warn("Invalid debounce, using default", "value", opts.WatchDebounce, "error", err)
				debounce = 250 * time.Millisecond
			}
			watcher = config.NewWatcher(iniPath,
				func(path string) (config.LoadResult, error) {
					return config.Load(path, configLogger), nil
				},
				configLogger,
				config.WithDebounce[config.LoadResult](debounce),
			)
			watcher.OnReload(func(r config.LoadResult) {
				notifier.Reloading()
				current.set(r)
				publishLoaded(bus, r, true)
				list := svc.Apply(r.Settings)
				notifier.Status(fmt.Sprintf("%d devices", len(list)))
				notifier.Ready()
			})
		}

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Devices:      svc,
			Config:       current.get,
			Drivers:      audio.NewRegistry(),
			EventBus:     bus,
		}
		if m != nil {
			apiOpts.PrometheusHandler = m.Handler()
		}
		server := api.NewServer(apiOpts)

		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			if watcher != nil {
				if err := watcher.Start(ctx); err != nil {
					logger.Warn("Failed to watch RS_ASIO.ini", "path", iniPath, "error", err)
				}
			}

			if opts.Hotplug {
				go func() {
					hotplugLogger := logging.GetLogger("audio")
					err := audio.WatchCards(ctx, func(ev audio.CardEvent) {
						hotplugLogger.Info("Sound card changed", "action", ev.Action, "card", ev.Card)
						bus.Publish(events.HotplugEvent{
							Action:    ev.Action,
							Card:      ev.Card,
							Timestamp: time.Now().Format(time.RFC3339),
						})
						svc.Refresh()
					})
					switch {
					case errors.Is(err, audio.ErrUnsupported):
						hotplugLogger.Debug("Hotplug monitoring not supported on this platform")
					case err != nil:
						hotplugLogger.Warn("Hotplug monitoring stopped", "error", err)
					}
				}()
			}

			go notifier.Watchdog(ctx)
			notifier.Status(fmt.Sprintf("%d devices", len(list)))
			notifier.Ready()

			if err := server.Start(opts.Port); err != nil {
				logger.Error("Server failed to start", "error", err)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			notifier.Stopping()
			cancel()
			if watcher != nil {
				if err := watcher.Stop(); err != nil {
					logger.Error("Error stopping config watcher", "error", err)
				}
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Error("Error stopping server", "error", err)
			}

			if err := svc.Close(); err != nil {
				logger.Error("Error releasing audio backends", "error", err)
			}
		})
	})

	cli.Root().Use = "audiobridge"
	cli.Root().Version = version.String()

	cli.Root().AddCommand(cmd.CreateDevicesCmd())
	cli.Root().AddCommand(cmd.CreateConfigCmd())
	cli.Root().AddCommand(cmd.CreateDriversCmd())

	cli.Run()
}
